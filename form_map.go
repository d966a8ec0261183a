package formstream

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ListFormat controls how FromMap expands a list value into fields.
type ListFormat uint8

const (
	// ListMulti repeats the field name for every element: name=a, name=b.
	ListMulti ListFormat = iota
	// ListMultiCompatible repeats the name with array brackets: name[]=a.
	ListMultiCompatible
	// ListCSV joins the elements into one field, comma separated.
	ListCSV
	// ListSSV joins the elements into one field, space separated.
	ListSSV
	// ListTSV joins the elements into one field, tab separated.
	ListTSV
	// ListPipes joins the elements into one field, pipe separated.
	ListPipes
)

func (l ListFormat) separator() string {
	switch l {
	case ListSSV:
		return " "
	case ListTSV:
		return "\t"
	case ListPipes:
		return "|"
	default:
		return ","
	}
}

// FromMap builds a form from a value map. Nested maps flatten into
// bracketed names (user[name]), lists expand per the form's ListFormat,
// ByteSource values become file parts and everything else becomes a text
// field through string coercion (nil coerces to ""). Map keys are visited
// in sorted order so the part order, and with it the encoded body, is
// deterministic.
func FromMap(m map[string]any, opts ...Option) *Form {
	f := New(opts...)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.appendValue(k, m[k])
	}
	return f
}

func (f *Form) appendValue(path string, v any) {
	switch val := v.(type) {
	case nil:
		f.AddField(path, "")
	case string:
		f.AddField(path, val)
	case []byte:
		f.AddField(path, string(val))
	case ByteSource:
		f.AddFile(path, val)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map:
			f.appendNestedMap(path, rv)
		case reflect.Slice, reflect.Array:
			f.appendList(path, rv)
		default:
			f.AddField(path, scalarString(v))
		}
	}
}

func (f *Form) appendNestedMap(path string, rv reflect.Value) {
	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]reflect.Value, rv.Len())
	for _, k := range rv.MapKeys() {
		ks := scalarString(k.Interface())
		keys = append(keys, ks)
		byKey[ks] = rv.MapIndex(k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		childPath := k
		if path != "" {
			childPath = path + "[" + k + "]"
		}
		f.appendValue(childPath, byKey[k].Interface())
	}
}

func (f *Form) appendList(path string, rv reflect.Value) {
	switch f.listFormat {
	case ListMulti, ListMultiCompatible:
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			itemPath := path
			// Containers keep an explicit index so nested names stay
			// unambiguous; scalars repeat the bare or bracketed name.
			if isContainer(item) {
				itemPath = fmt.Sprintf("%s[%d]", path, i)
			} else if f.listFormat == ListMultiCompatible {
				itemPath = path + "[]"
			}
			f.appendValue(itemPath, item)
		}
	default:
		sep := f.listFormat.separator()
		elems := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems = append(elems, scalarString(rv.Index(i).Interface()))
		}
		f.AddField(path, strings.Join(elems, sep))
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case nil, string, []byte, ByteSource:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
