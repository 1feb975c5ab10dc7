package validation

import (
	"fmt"
)

// FieldKind tells a client which input control renders the field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindEmail  FieldKind = "email"
	KindTel    FieldKind = "tel"
	KindSelect FieldKind = "select"
)

// Field describes one form field and its ordered rules.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []string
	Rules       []Rule
}

// Schema is an ordered set of fields. The first failing rule of a field wins.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema creates a schema. Field names must be unique and every Requires
// dependency must name a field of the schema.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		s.index[f.Name] = i
	}
	for _, f := range fields {
		for _, r := range f.Rules {
			for _, dep := range r.Requires {
				if _, ok := s.index[dep]; !ok {
					return nil, fmt.Errorf("field %q depends on unknown field %q", f.Name, dep)
				}
				if dep == f.Name {
					return nil, fmt.Errorf("field %q depends on itself", f.Name)
				}
			}
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the schema declares the field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Dependents returns the fields whose rules require the named field.
func (s *Schema) Dependents(name string) []string {
	var out []string
	for _, f := range s.fields {
		for _, r := range f.Rules {
			if contains(r.Requires, name) {
				out = append(out, f.Name)
				break
			}
		}
	}
	return out
}

// Validate evaluates every field and returns the failing ones mapped to their
// message. A valid record yields an empty map.
func (s *Schema) Validate(values Values) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.fields {
		if msg, ok := s.validateField(f, values, nil); !ok {
			errs[f.Name] = msg
		}
	}
	return errs
}

// ValidateField evaluates a single field. It returns the message of the first
// failing rule and false, or "" and true when the field is valid. Unknown
// fields are reported as invalid.
func (s *Schema) ValidateField(values Values, name string) (string, bool) {
	f, ok := s.Field(name)
	if !ok {
		return fmt.Sprintf("Unknown field %s", name), false
	}
	return s.validateField(f, values, nil)
}

func (s *Schema) validateField(f Field, values Values, visiting map[string]bool) (string, bool) {
	value := values.Get(f.Name)
	for _, r := range f.Rules {
		if len(r.Requires) > 0 {
			if dep, ok := s.firstInvalid(r.Requires, values, visiting, f.Name); !ok {
				if r.Message != "" {
					return r.message(values), false
				}
				return "Please fill " + dep.Label + " first", false
			}
			continue
		}
		if !r.passes(value, values) {
			return r.message(values), false
		}
	}
	return "", true
}

// firstInvalid returns the first dependency that is empty or fails its own
// rules. Cycles are guarded by the visiting set.
func (s *Schema) firstInvalid(deps []string, values Values, visiting map[string]bool, owner string) (Field, bool) {
	if visiting == nil {
		visiting = make(map[string]bool)
	}
	visiting[owner] = true
	defer delete(visiting, owner)

	for _, name := range deps {
		dep := s.fields[s.index[name]]
		if values.Get(name) == "" {
			return dep, false
		}
		if visiting[name] {
			continue
		}
		if _, ok := s.validateField(dep, values, visiting); !ok {
			return dep, false
		}
	}
	return Field{}, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
