package lang

import "iter"

// Type indicates which variant a Value holds.
type Type int

const (
	// TypeInteger represents a signed 64-bit whole number.
	TypeInteger Type = iota

	// TypeText represents raw text contents with no escaping applied.
	TypeText

	// TypeRecord represents an ordered set of named fields.
	TypeRecord
)

// String returns a string representation of the value type.
func (vt Type) String() string {
	switch vt {
	case TypeInteger:
		return "Integer"
	case TypeText:
		return "Text"
	case TypeRecord:
		return "Record"
	default:
		return "Unknown"
	}
}

// Value is a fully resolved constant value.
//
// A Value is immutable once constructed: the parser builds each node exactly
// once at the point its syntax is fully consumed, and nothing mutates it
// afterward. Exactly one of the payload fields is meaningful based on Type.
type Value struct {
	Type   Type
	Int    int64   // For TypeInteger
	Text   string  // For TypeText
	Record *Record // For TypeRecord
}

// NewInteger creates an integer value.
func NewInteger(v int64) *Value {
	return &Value{Type: TypeInteger, Int: v}
}

// NewText creates a text value holding s verbatim.
func NewText(s string) *Value {
	return &Value{Type: TypeText, Text: s}
}

// NewRecord creates a record value. A nil record is treated as empty.
func NewRecord(r *Record) *Value {
	if r == nil {
		r = &Record{}
	}

	return &Value{Type: TypeRecord, Record: r}
}

// Clone returns a structural copy of the value. Records are copied
// recursively so the result shares no nodes with the receiver; scalar
// variants are copied by value.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	dup := *v

	if v.Type == TypeRecord {
		dup.Record = v.Record.Clone()
	}

	return &dup
}

// Record is an ordered set of named fields. Field insertion order is
// preserved; overwriting an existing field keeps its original position.
//
// The zero value is an empty record ready for use.
type Record struct {
	names  []string
	fields map[string]*Value
}

// Set binds a field, overwriting any prior binding of the same name while
// keeping the name's original position (last-write-wins).
func (r *Record) Set(name string, v *Value) {
	if r.fields == nil {
		r.fields = make(map[string]*Value)
	}

	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}

	r.fields[name] = v
}

// Get retrieves a field by name.
// Returns (nil, false) if the field is not present.
func (r *Record) Get(name string) (*Value, bool) {
	v, ok := r.fields[name]

	return v, ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// All returns an iterator over the fields in insertion order.
func (r *Record) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, name := range r.names {
			if !yield(name, r.fields[name]) {
				return
			}
		}
	}
}

// Names returns the field names in insertion order.
func (r *Record) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)

	return names
}

// Clone returns a structural copy of the record and all nested values.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	dup := &Record{
		names:  make([]string, len(r.names)),
		fields: make(map[string]*Value, len(r.fields)),
	}
	copy(dup.names, r.names)

	for name, v := range r.fields {
		dup.fields[name] = v.Clone()
	}

	return dup
}

// Environment is the ordered mapping of constant names to resolved values
// built during parsing. It is the parser's sole mutable state and the
// program's final output.
//
// At the moment a reference to a name is parsed, that name must already be
// bound: the environment reflects only statements fully processed so far.
// Redefining a name silently overwrites its prior binding.
type Environment struct {
	Record
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{}
}

// Define binds a constant, overwriting any prior binding of the same name.
func (env *Environment) Define(name string, v *Value) {
	env.Set(name, v)
}

// Lookup retrieves the resolved value of a previously defined constant.
func (env *Environment) Lookup(name string) (*Value, bool) {
	return env.Get(name)
}
