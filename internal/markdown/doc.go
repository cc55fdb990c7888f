// Package markdown loads Markdown documents with YAML frontmatter and seeds
// page records from them. The goldmark parser doubles as the richtext
// renderer used when page fields are serialized.
package markdown
