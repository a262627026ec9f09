package gridplot

import (
	"fmt"
	"reflect"
)

// Context describes where an accessed datum comes from.
type Context struct {
	DatasetKey   string         // key under which the dataset is bound to a plot
	Metadata     any            // the dataset's metadata
	PlotMetadata map[string]any // state the plot keeps per dataset
}

// AccessorFunc extracts a value from the datum at index.
type AccessorFunc func(datum any, index int, ctx Context) any

type accessorKind int

const (
	fieldAccessor accessorKind = iota
	funcAccessor
	constantAccessor
)

// An Accessor selects how a visual attribute obtains its raw value from a
// datum: by Field name, through a Func or as a Constant.
type Accessor struct {
	kind  accessorKind
	field string
	fn    AccessorFunc
	value any
}

// Field returns an Accessor reading the named field of a datum. Maps with
// string keys and structs (exported fields) are supported.
func Field(name string) Accessor { return Accessor{kind: fieldAccessor, field: name} }

// Func returns an Accessor computing the value with f.
func Func(f AccessorFunc) Accessor { return Accessor{kind: funcAccessor, fn: f} }

// Constant returns an Accessor yielding v for every datum.
func Constant(v any) Accessor { return Accessor{kind: constantAccessor, value: v} }

// String describes a.
func (a Accessor) String() string {
	switch a.kind {
	case fieldAccessor:
		return fmt.Sprintf("field(%q)", a.field)
	case funcAccessor:
		return "func"
	default:
		return fmt.Sprintf("constant(%v)", a.value)
	}
}

// IsConstant reports whether a is a Constant accessor and returns its value.
func (a Accessor) IsConstant() (any, bool) {
	return a.value, a.kind == constantAccessor
}

// Resolve turns a into a uniform callable.
func (a Accessor) Resolve() AccessorFunc {
	switch a.kind {
	case fieldAccessor:
		name := a.field
		return func(d any, _ int, _ Context) any { return lookupField(d, name) }
	case funcAccessor:
		if a.fn == nil {
			return func(any, int, Context) any { return nil }
		}
		return a.fn
	default:
		v := a.value
		return func(any, int, Context) any { return v }
	}
}

// lookupField returns the field name of d or nil if d has no such field.
func lookupField(d any, name string) any {
	switch m := d.(type) {
	case map[string]any:
		return m[name]
	case map[string]float64:
		v, ok := m[name]
		if !ok {
			return nil
		}
		return v
	case map[string]string:
		v, ok := m[name]
		if !ok {
			return nil
		}
		return v
	case nil:
		return nil
	}

	v := reflect.ValueOf(d)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		fv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !fv.IsValid() {
			return nil
		}
		return fv.Interface()
	case reflect.Struct:
		fv := v.FieldByName(name)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil
		}
		return fv.Interface()
	}
	return nil
}
