package fields

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cms-api/pages"
	"github.com/google/uuid"
)

// pageAttribute is a page model column addressable as an exposed field.
// Attributes are discovered once per process from the Page struct's JSON
// tags.
type pageAttribute struct {
	name     string
	index    []int
	schema   map[string]any
	required bool
}

func (a pageAttribute) value(page *pages.Page) any {
	if page == nil {
		return nil
	}
	field := reflect.ValueOf(page).Elem().FieldByIndex(a.index)
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil
		}
		field = field.Elem()
	}
	return field.Interface()
}

var (
	attrOnce sync.Once
	attrs    map[string]pageAttribute
)

func pageAttributes() map[string]pageAttribute {
	attrOnce.Do(func() {
		attrs = map[string]pageAttribute{}
		pageType := reflect.TypeOf(pages.Page{})
		for i := 0; i < pageType.NumField(); i++ {
			field := pageType.Field(i)
			if field.Anonymous || !field.IsExported() {
				continue
			}
			name := jsonName(field)
			if name == "" {
				continue
			}
			// Raw field storage and relations resolve through their own
			// paths, never as plain attributes.
			if name == "fields" || name == "parent" {
				continue
			}
			schema, ok := attributeSchema(field.Type)
			if !ok {
				continue
			}
			attrs[name] = pageAttribute{
				name:     name,
				index:    field.Index,
				schema:   schema,
				required: field.Type.Kind() != reflect.Pointer,
			}
		}
	})
	return attrs
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

func attributeSchema(t reflect.Type) (map[string]any, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case uuidType:
		return map[string]any{"type": "string", "format": "uuid"}, true
	case timeType:
		return map[string]any{"type": "string", "format": "date-time"}, true
	}
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}, true
	case reflect.Bool:
		return map[string]any{"type": "boolean"}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}, true
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}, true
	default:
		return nil, false
	}
}
