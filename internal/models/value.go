package models

import "encoding/json"

// Kind identifies one of the six JSON value variants.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Value is a single node of a parsed JSON document. Exactly one of the
// variant fields is meaningful, selected by Kind. Values form a tree with
// no sharing between subtrees.
type Value struct {
	Kind   Kind
	Str    string      // KindString
	Num    json.Number // KindNumber
	Bool   bool        // KindBoolean
	Object *Object     // KindObject
	Array  []*Value    // KindArray
}

// NewString returns a string Value.
func NewString(s string) *Value { return &Value{Kind: KindString, Str: s} }

// NewNumber returns a number Value. The raw json.Number form is kept so
// integers and floats survive without precision loss.
func NewNumber(n json.Number) *Value { return &Value{Kind: KindNumber, Num: n} }

// NewBool returns a boolean Value.
func NewBool(b bool) *Value { return &Value{Kind: KindBoolean, Bool: b} }

// NewNull returns a null Value.
func NewNull() *Value { return &Value{Kind: KindNull} }

// NewObjectValue wraps an Object as a Value node.
func NewObjectValue(o *Object) *Value { return &Value{Kind: KindObject, Object: o} }

// NewArrayValue wraps element Values as an array node.
func NewArrayValue(elems []*Value) *Value { return &Value{Kind: KindArray, Array: elems} }

// Member is one (key, value) slot of an Object.
type Member struct {
	Key   string
	Value *Value
}

// Object is an insertion-ordered JSON object: a sequence of (key, value)
// slots plus an index from key to slot. Keys appear in first-occurrence
// order; setting an existing key overwrites the slot's value in place
// (last-value-wins) without moving it.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set assigns key to v. It reports whether key was already present, which
// is how the parser detects duplicate keys while materializing an object.
func (o *Object) Set(key string, v *Value) bool {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return true
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return false
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (*Value, bool) {
	if i, ok := o.index[key]; ok {
		return o.members[i].Value, true
	}
	return nil, false
}

// Len returns the number of distinct keys.
func (o *Object) Len() int { return len(o.members) }

// Members returns the slots in first-occurrence order. The returned slice
// is the Object's backing storage; callers must not mutate it.
func (o *Object) Members() []Member { return o.members }

// Keys returns the keys in first-occurrence order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}
