package extraction

import (
	"fmt"
	"slices"
)

// FieldDescriptor describes how one scalar field is resolved.
// Matchers are tried in order; the first match wins and later ones are not consulted.
// A nil Default serializes as null.
type FieldDescriptor struct {
	Name     string
	Matchers []Matcher
	Default  *string
}

// Schema is the ordered set of descriptors an Extractor applies.
// It is immutable once built and safe to share between goroutines.
type Schema struct {
	fields     []FieldDescriptor
	composites []CompositeDescriptor
}

// NewSchema checks that fields and composites cover every record key exactly once.
func NewSchema(fields []FieldDescriptor, composites []CompositeDescriptor) (*Schema, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !slices.Contains(ScalarFields, f.Name) {
			return nil, &SchemaError{Field: f.Name, Message: "unknown scalar field"}
		}
		if seen[f.Name] {
			return nil, &SchemaError{Field: f.Name, Message: "declared twice"}
		}
		if len(f.Matchers) == 0 {
			return nil, &SchemaError{Field: f.Name, Message: "no matchers"}
		}
		seen[f.Name] = true
	}
	for _, name := range ScalarFields {
		if !seen[name] {
			return nil, &SchemaError{Field: name, Message: "missing from schema"}
		}
	}

	seenComposite := make(map[string]bool, len(composites))
	for _, c := range composites {
		if !slices.Contains(CompositeFields, c.Name) {
			return nil, &SchemaError{Field: c.Name, Message: "unknown composite"}
		}
		if seenComposite[c.Name] {
			return nil, &SchemaError{Field: c.Name, Message: "declared twice"}
		}
		seenComposite[c.Name] = true
	}
	for _, name := range CompositeFields {
		if !seenComposite[name] {
			return nil, &SchemaError{Field: name, Message: "missing from schema"}
		}
	}

	return &Schema{
		fields:     slices.Clone(fields),
		composites: slices.Clone(composites),
	}, nil
}

// Fields returns a copy of the scalar descriptors.
func (s *Schema) Fields() []FieldDescriptor {
	return slices.Clone(s.fields)
}

// Composites returns a copy of the composite descriptors.
func (s *Schema) Composites() []CompositeDescriptor {
	return slices.Clone(s.composites)
}

// WithDefaults returns a copy of s whose composite defaults come from d.
// Zero pairs in d keep the current default.
func (s *Schema) WithDefaults(d Defaults) (*Schema, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	overrides := d.byComposite()
	composites := slices.Clone(s.composites)
	for i, c := range composites {
		if p := overrides[c.Name]; !p.IsZero() {
			composites[i].Default = p
		}
	}
	return &Schema{fields: slices.Clone(s.fields), composites: composites}, nil
}

var emptyDefault = ""

func emptyString() *string {
	return &emptyDefault
}

// DefaultSchema returns the schema with one authoritative matcher per field.
func DefaultSchema() *Schema {
	return defaultSchema
}

// LegacySchema returns DefaultSchema with each field's legacy pattern appended
// after its authoritative one.
func LegacySchema() *Schema {
	return legacySchema
}

var (
	defaultSchema = mustSchema(false)
	legacySchema  = mustSchema(true)
)

func mustSchema(legacy bool) *Schema {
	fields := []FieldDescriptor{
		{Name: FieldDiplomaNumber, Matchers: []Matcher{mustPattern(exprDiplomaNumber, false)}},
		{Name: FieldName, Matchers: []Matcher{NameSection()}},
		{Name: FieldBirthDate, Matchers: []Matcher{mustPattern(exprBirthDate, false)}, Default: emptyString()},
		{Name: FieldBirthPlace, Matchers: []Matcher{mustPattern(exprBirthPlace, false)}, Default: emptyString()},
		{Name: FieldGender, Matchers: []Matcher{mustPattern(exprGender, false)}, Default: emptyString()},
		{Name: FieldRegistrationNumber, Matchers: []Matcher{mustPattern(exprRegistrationNumber, false)}, Default: emptyString()},
		{Name: FieldSpecialization, Matchers: []Matcher{mustPattern(exprSpecialization, true)}, Default: emptyString()},
		{Name: FieldSeries, Matchers: []Matcher{mustPattern(exprSeries, true)}, Default: emptyString()},
		{Name: FieldGrade, Matchers: []Matcher{mustPattern(exprGrade, true)}, Default: emptyString()},
		{Name: FieldIssueDate, Matchers: []Matcher{mustPattern(exprIssueDate, false)}, Default: emptyString()},
		{Name: FieldSessionDate, Matchers: []Matcher{mustPattern(exprSessionDate, false)}},
	}

	if legacy {
		for i := range fields {
			if expr, ok := LegacyPatterns[fields[i].Name]; ok {
				fields[i].Matchers = append(fields[i].Matchers, mustPattern(expr, false))
			}
		}
	}

	composites := []CompositeDescriptor{
		{Name: CompositeCertificateType, Pattern: mustCompile(exprCertificateType), Default: DefaultCertificateType},
		{Name: CompositeUniversity, Pattern: mustCompile(exprUniversity), Default: DefaultUniversity},
		{Name: CompositeSchool, Pattern: mustCompile(exprSchool), Default: DefaultSchool},
		{Name: CompositeMinistry, Pattern: mustCompile(exprMinistry), Default: DefaultMinistry},
	}

	s, err := NewSchema(fields, composites)
	if err != nil {
		panic(fmt.Sprintf("extraction: built-in schema: %v", err))
	}
	return s
}

// SchemaFor returns DefaultSchema, or LegacySchema when legacy is set, with
// its composite defaults overridden by d and the expressions of p added.
func SchemaFor(legacy bool, d Defaults, p Patterns) (*Schema, error) {
	base := DefaultSchema()
	if legacy {
		base = LegacySchema()
	}
	s, err := base.WithDefaults(d)
	if err != nil {
		return nil, err
	}
	return s.WithPatterns(p)
}
