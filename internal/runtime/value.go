// Package runtime implements the evaluator and runtime value system for sun-lang.
package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags a Value.
type ValueKind int

const (
	NilKind ValueKind = iota
	NumberKind
	StringKind
	BooleanKind
	FunctionKind // reserved; nothing constructs it yet
	ObjectKind
)

var valueKindNames = [...]string{
	NilKind:      "nil",
	NumberKind:   "number",
	StringKind:   "string",
	BooleanKind:  "boolean",
	FunctionKind: "function",
	ObjectKind:   "object",
}

func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is a tagged runtime datum. Only the payload selected by the kind is
// meaningful; reading any other payload returns that payload's zero value.
// The zero Value is Nil.
type Value struct {
	kind    ValueKind
	number  float64
	str     string
	boolean bool
	object  *Object
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Number returns a number value.
func Number(n float64) Value { return Value{kind: NumberKind, number: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, str: s} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: BooleanKind, boolean: b} }

// ObjectValue wraps obj. A nil obj becomes an empty object.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: ObjectKind, object: obj}
}

// Kind returns the value's tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.kind == NilKind }

// AsNumber returns the number payload, or 0 for any other kind.
func (v Value) AsNumber() float64 {
	if v.kind != NumberKind {
		return 0
	}
	return v.number
}

// AsString returns the string payload, or "" for any other kind.
func (v Value) AsString() string {
	if v.kind != StringKind {
		return ""
	}
	return v.str
}

// AsBoolean returns the boolean payload, or false for any other kind.
func (v Value) AsBoolean() bool {
	if v.kind != BooleanKind {
		return false
	}
	return v.boolean
}

// AsObject returns the object payload, or nil for any other kind. A nil
// *Object is safe to read from.
func (v Value) AsObject() *Object {
	if v.kind != ObjectKind {
		return nil
	}
	return v.object
}

// Clone returns a deep copy; objects are copied recursively so the result
// shares no mutable state with v.
func (v Value) Clone() Value {
	if v.kind != ObjectKind {
		return v
	}
	return Value{kind: ObjectKind, object: v.object.Clone()}
}

// Equal reports deep equality of kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NilKind, FunctionKind:
		return true
	case NumberKind:
		return v.number == other.number
	case StringKind:
		return v.str == other.str
	case BooleanKind:
		return v.boolean == other.boolean
	case ObjectKind:
		return v.object.Equal(other.object)
	}
	return false
}

// String returns the debug form, e.g. Number(14) or Object{a: Nil}.
func (v Value) String() string {
	switch v.kind {
	case NilKind:
		return "Nil"
	case NumberKind:
		return "Number(" + strconv.FormatFloat(v.number, 'g', -1, 64) + ")"
	case StringKind:
		return "String(" + strconv.Quote(v.str) + ")"
	case BooleanKind:
		return "Boolean(" + strconv.FormatBool(v.boolean) + ")"
	case ObjectKind:
		return v.object.String()
	default:
		return "Invalid"
	}
}

// ---- Object ----

// Object is a name→Value mapping that remembers insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or replaces the value stored under name.
func (o *Object) Set(name string, v Value) {
	if _, exists := o.values[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.values[name] = v
}

// Delete removes name. Missing names are ignored.
func (o *Object) Delete(name string) {
	if _, exists := o.values[name]; !exists {
		return
	}
	delete(o.values, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under name.
func (o *Object) Get(name string) (Value, bool) {
	if o == nil {
		return Nil(), false
	}
	v, ok := o.values[name]
	return v, ok
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of properties.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone deep-copies the object.
func (o *Object) Clone() *Object {
	out := NewObject()
	if o == nil {
		return out
	}
	for _, k := range o.keys {
		out.Set(k, o.values[k].Clone())
	}
	return out
}

// Equal compares property sets; order is ignored.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.Keys() {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		v, _ := o.Get(k)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (o *Object) String() string {
	parts := make([]string, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		parts = append(parts, k+": "+v.String())
	}
	return "Object{" + strings.Join(parts, ", ") + "}"
}
