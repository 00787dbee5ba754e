// Package extraction turns the raw text of a bilingual diploma into a types.DiplomaRecord.
//
// Each scalar field is resolved independently by an ordered chain of matchers;
// the first match wins and anything that does not match takes the field's
// default. Bilingual composites are matched as a single French-then-English
// pattern and fall back to a known-good pair as a whole. Extraction never
// returns an error: partial documents yield partial records.
package extraction

import (
	"github.com/jonathan/diploma-scanner/internal/types"
)

// Extractor applies a Schema to document text. It holds no mutable state.
type Extractor struct {
	schema *Schema
}

// New creates an Extractor for schema. A nil schema means DefaultSchema.
func New(schema *Schema) *Extractor {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Extractor{schema: schema}
}

// Schema returns the schema the extractor applies.
func (e *Extractor) Schema() *Schema {
	return e.schema
}

// Extract builds a fresh record from text.
func (e *Extractor) Extract(text string) *types.DiplomaRecord {
	rec, _ := e.ExtractWithReport(text)
	return rec
}

// ExtractWithReport builds a fresh record from text and reports, per field,
// whether it matched and which matcher produced it.
func (e *Extractor) ExtractWithReport(text string) (*types.DiplomaRecord, Report) {
	rec := &types.DiplomaRecord{}
	report := Report{Outcomes: make([]types.FieldOutcome, 0, len(e.schema.fields)+len(e.schema.composites))}

	for _, f := range e.schema.fields {
		value, idx := firstMatch(f.Matchers, text)
		if idx >= 0 {
			setScalar(rec, f.Name, &value)
		} else {
			setScalar(rec, f.Name, f.Default)
		}
		report.Outcomes = append(report.Outcomes, types.FieldOutcome{Field: f.Name, Matched: idx >= 0, Matcher: idx})
	}

	for _, c := range e.schema.composites {
		pair, ok := c.resolve(text)
		setComposite(rec, c.Name, pair)
		idx := -1
		if ok {
			idx = 0
		}
		report.Outcomes = append(report.Outcomes, types.FieldOutcome{Field: c.Name, Matched: ok, Matcher: idx})
	}

	return rec, report
}

var defaultExtractor = New(nil)

// Extract runs the default extractor over text.
func Extract(text string) *types.DiplomaRecord {
	return defaultExtractor.Extract(text)
}

// copyOf returns a pointer to a copy of *v so records never share storage.
func copyOf(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func setScalar(rec *types.DiplomaRecord, name string, v *string) {
	switch name {
	case FieldDiplomaNumber:
		rec.DiplomaNumber = copyOf(v)
	case FieldName:
		rec.Name = copyOf(v)
	case FieldSessionDate:
		rec.SessionDate = copyOf(v)
	case FieldBirthDate:
		rec.BirthDate = types.StringValue(v)
	case FieldBirthPlace:
		rec.BirthPlace = types.StringValue(v)
	case FieldGender:
		rec.Gender = types.StringValue(v)
	case FieldRegistrationNumber:
		rec.RegistrationNumber = types.StringValue(v)
	case FieldSpecialization:
		rec.Specialization = types.StringValue(v)
	case FieldSeries:
		rec.Series = types.StringValue(v)
	case FieldGrade:
		rec.Grade = types.StringValue(v)
	case FieldIssueDate:
		rec.IssueDate = types.StringValue(v)
	}
}

func setComposite(rec *types.DiplomaRecord, name string, p types.BilingualPair) {
	switch name {
	case CompositeCertificateType:
		rec.CertificateType = p
	case CompositeUniversity:
		rec.Institution.Name = p
	case CompositeSchool:
		rec.Institution.School = p
	case CompositeMinistry:
		rec.Institution.Ministry = p
	}
}
