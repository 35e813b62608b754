package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists the column names declared by a struct's "db"
// tags, walking embedded structs such as entity.BaseDocument.
// Repositories call it once at construction to build their SELECT
// lists, so the reflection cost is paid a single time.
//
//	columns := ExtractDBColumns[customer.Customer]()
//	// ["id", "code", "name", "full_name", "tax_id", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Unexported fields are invisible to StructToMap; keep the
		// column list consistent with what it can read.
		if field.PkgPath != "" {
			continue
		}

		if field.Anonymous {
			cols = append(cols, columnsOf(field.Type)...)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}

	return cols
}

// taggedField is a pre-resolved db-tagged field of a struct.
type taggedField struct {
	index int
	dbTag string
}

// structMeta is the cached layout of one struct type: its db-tagged
// fields plus the indices of embedded structs that need a recursive
// walk.
type structMeta struct {
	fields   []taggedField
	embedded []int
}

var typeCache sync.Map // map[reflect.Type]*structMeta

// metaFor returns the cached layout for t, computing it on first use.
func metaFor(t reflect.Type) *structMeta {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := typeCache.Load(t); ok {
		return cached.(*structMeta)
	}

	meta := &structMeta{}
	if t.Kind() != reflect.Struct {
		typeCache.Store(t, meta)
		return meta
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Unexported fields cannot be read via Interface(); skip them
		// so StructToMap never panics on one.
		if field.PkgPath != "" {
			continue
		}

		if field.Anonymous {
			meta.embedded = append(meta.embedded, i)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		meta.fields = append(meta.fields, taggedField{index: i, dbTag: tag})
	}

	typeCache.Store(t, meta)
	return meta
}

// StructToMap flattens a struct into a column-to-value map using its
// "db" tags. Fields without a tag, or tagged "-", are left out.
// Repositories use it to feed squirrel INSERT and UPDATE builders
// without hand-written column lists. Layouts are cached per type, so
// after the first call for a type only value access remains.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metaFor(rv.Type())
	res := make(map[string]any, len(meta.fields))

	for _, f := range meta.fields {
		res[f.dbTag] = rv.Field(f.index).Interface()
	}

	for _, i := range meta.embedded {
		for k, v := range StructToMap(rv.Field(i).Interface()) {
			res[k] = v
		}
	}

	return res
}
