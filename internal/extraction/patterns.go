package extraction

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Patterns holds deployment-specific expressions loaded from configuration.
//
// Fields maps a scalar field name to expressions appended after the field's
// built-in matchers; names match case-insensitively because config keys are
// lowercased on load. Composites maps certificate_type, university, school or
// ministry to an expression that replaces the built-in one and keeps its default.
type Patterns struct {
	Fields     map[string][]string `json:"fields,omitempty" mapstructure:"fields"`
	Composites map[string]string   `json:"composites,omitempty" mapstructure:"composites"`
}

var compositeKeys = map[string]string{
	"certificate_type": CompositeCertificateType,
	"university":       CompositeUniversity,
	"school":           CompositeSchool,
	"ministry":         CompositeMinistry,
}

// trimmedFields are the fields whose captures are trimmed.
var trimmedFields = map[string]bool{
	FieldName:           true,
	FieldSpecialization: true,
	FieldSeries:         true,
	FieldGrade:          true,
}

// IsZero reports whether p adds nothing.
func (p Patterns) IsZero() bool {
	return len(p.Fields) == 0 && len(p.Composites) == 0
}

// Validate compiles every expression in p.
func (p Patterns) Validate() error {
	_, err := DefaultSchema().WithPatterns(p)
	return err
}

// WithPatterns returns a copy of s with p applied.
func (s *Schema) WithPatterns(p Patterns) (*Schema, error) {
	if p.IsZero() {
		return s, nil
	}

	fields := s.Fields()
	for _, key := range slices.Sorted(maps.Keys(p.Fields)) {
		i := slices.IndexFunc(fields, func(f FieldDescriptor) bool {
			return strings.EqualFold(f.Name, key)
		})
		if i < 0 {
			return nil, &SchemaError{Field: key, Message: "unknown scalar field"}
		}

		build := Pattern
		if trimmedFields[fields[i].Name] {
			build = TrimmedPattern
		}
		matchers := slices.Clone(fields[i].Matchers)
		for _, expr := range p.Fields[key] {
			m, err := build(expr)
			if err != nil {
				var schemaErr *SchemaError
				if errors.As(err, &schemaErr) {
					schemaErr.Field = fields[i].Name
				}
				return nil, err
			}
			matchers = append(matchers, m)
		}
		fields[i].Matchers = matchers
	}

	composites := s.Composites()
	for _, key := range slices.Sorted(maps.Keys(p.Composites)) {
		name, ok := compositeKeys[strings.ToLower(key)]
		if !ok {
			return nil, &SchemaError{Field: key, Message: "unknown composite"}
		}
		i := slices.IndexFunc(composites, func(c CompositeDescriptor) bool {
			return c.Name == name
		})
		c, err := NewComposite(name, p.Composites[key], composites[i].Default)
		if err != nil {
			return nil, err
		}
		composites[i] = c
	}

	return NewSchema(fields, composites)
}
