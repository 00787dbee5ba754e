package extraction

import (
	"errors"
	"testing"

	"github.com/jonathan/diploma-scanner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern(t *testing.T) {
	m, err := Pattern(`Code\s*:\s*(\w+)`)
	require.NoError(t, err)

	v, ok := m.Match("Code : ABC123")
	assert.True(t, ok)
	assert.Equal(t, "ABC123", v)

	_, ok = m.Match("nothing here")
	assert.False(t, ok)
}

func TestPattern_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantMsg string
	}{
		{"invalid syntax", `Code : (\w+`, "invalid pattern"},
		{"lookahead unsupported", `Code(?=:)(\w+)`, "invalid pattern"},
		{"no capture group", `Code : \w+`, "no capture group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pattern(tt.expr)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTrimmedPattern(t *testing.T) {
	raw, err := Pattern(`Domaine:(.*)`)
	require.NoError(t, err)
	trimmed, err := TrimmedPattern(`Domaine:(.*)`)
	require.NoError(t, err)

	v, ok := raw.Match("Domaine:  Physique ")
	assert.True(t, ok)
	assert.Equal(t, "  Physique ", v)

	v, ok = trimmed.Match("Domaine:  Physique ")
	assert.True(t, ok)
	assert.Equal(t, "Physique", v)

	// Whitespace-only captures are treated as no match.
	_, ok = trimmed.Match("Domaine:   ")
	assert.False(t, ok)
}

func TestPattern_WidensWhitespace(t *testing.T) {
	m, err := Pattern(`Série\s*:\s*(\w+)`)
	require.NoError(t, err)

	for _, sep := range []string{" ", "\u00a0", "\u202f", "\t", "\ufeff"} {
		v, ok := m.Match("Série" + sep + ":" + sep + "C")
		assert.True(t, ok, "separator %q", sep)
		assert.Equal(t, "C", v)
	}
}

func TestPattern_SpacesInsideClasses(t *testing.T) {
	tests := []struct {
		name string
		expr string
		text string
		want string
	}{
		{"class member", `Code[\s:]+(\w+)`, "Code : ABC", "ABC"},
		{"class member nbsp", `Code[\s:]+(\w+)`, "Code\u00a0:\u00a0ABC", "ABC"},
		{"negated class", `Code:[^\s]+ (\w+)`, "Code:xyz ABC", "ABC"},
		{"negated class stops at nbsp", `Code:([^\s]+)`, "Code:xyz\u00a0ABC", "xyz"},
		{"non-space escape", `Code:(\S+)`, "Code:xyz\u202fABC", "xyz"},
		{"escaped backslash", `a\\s(\w+)`, `a\sB`, "B"},
		{"leading bracket member", `Code[]\s]+(\w+)`, "Code] ABC", "ABC"},
		{"posix class", `Code[[:space:]\s]+(\w+)`, "Code\u00a0ABC", "ABC"},
		{"quoted literal", `\Q\s\E(\w+)`, `\sABC`, "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Pattern(tt.expr)
			require.NoError(t, err)

			v, ok := m.Match(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestWidenSpaces(t *testing.T) {
	assert.Equal(t, "a"+unicodeSpace+"b", widenSpaces(`a\sb`))
	assert.Equal(t, "["+spaceMembers+":]", widenSpaces(`[\s:]`))
	assert.Equal(t, "[^"+spaceMembers+"]", widenSpaces(`[^\s]`))
	assert.Equal(t, unicodeNonSpace, widenSpaces(`\S`))
	assert.Equal(t, `[\S]`, widenSpaces(`[\S]`))
	assert.Equal(t, `\\s`, widenSpaces(`\\s`))
	assert.Equal(t, `\Q\s\E`, widenSpaces(`\Q\s\E`))
	assert.Equal(t, `\Q\s`, widenSpaces(`\Q\s`))
	assert.Equal(t, `[[:space:]]`, widenSpaces(`[[:space:]]`))
}

func TestTrimSpace_MatchesJavaScriptTrim(t *testing.T) {
	assert.Equal(t, "Jane", trimSpace("\ufeff\u00a0 Jane\u2028\r\n"))
	assert.Equal(t, "\u0085Jane\u0085", trimSpace(" \u0085Jane\u0085 "))
}

func TestFirstMatch(t *testing.T) {
	hit := func(v string) Matcher {
		return MatcherFunc(func(string) (string, bool) { return v, true })
	}
	miss := MatcherFunc(func(string) (string, bool) { return "", false })

	calls := 0
	counting := MatcherFunc(func(string) (string, bool) {
		calls++
		return "late", true
	})

	v, idx := firstMatch([]Matcher{miss, hit("second"), counting}, "")
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, idx)
	assert.Zero(t, calls, "matchers after the first hit must not run")

	_, idx = firstMatch([]Matcher{miss, miss}, "")
	assert.Equal(t, -1, idx)

	_, idx = firstMatch(nil, "")
	assert.Equal(t, -1, idx)
}

func TestNewComposite(t *testing.T) {
	c, err := NewComposite(CompositeUniversity, `(UNIVERSITÉ DE \w+)(?s:.*?)(THE UNIVERSITY OF \w+)`, DefaultUniversity)
	require.NoError(t, err)

	pair, ok := c.resolve("UNIVERSITÉ DE MAROUA\n\nTHE UNIVERSITY OF MAROUA")
	assert.True(t, ok)
	assert.Equal(t, types.BilingualPair{French: "UNIVERSITÉ DE MAROUA", English: "THE UNIVERSITY OF MAROUA"}, pair)

	pair, ok = c.resolve("THE UNIVERSITY OF MAROUA\nUNIVERSITÉ DE MAROUA")
	assert.False(t, ok)
	assert.Equal(t, DefaultUniversity, pair)
}

func TestNewComposite_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		def  types.BilingualPair
		msg  string
	}{
		{"bad pattern", `(UNIV`, DefaultUniversity, "invalid pattern"},
		{"single group", `(UNIVERSITÉ DE \w+)`, DefaultUniversity, "french and an english group"},
		{"half default", `(A)(B)`, types.BilingualPair{French: "A"}, "both french and english"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComposite(CompositeUniversity, tt.expr, tt.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), CompositeUniversity)
		})
	}
}

func TestCompositeResolve_BlankHalf(t *testing.T) {
	c, err := NewComposite(CompositeSchool, `SCHOOL:(.*)/(.*)`, DefaultSchool)
	require.NoError(t, err)

	pair, ok := c.resolve("SCHOOL: ENS / ")
	assert.False(t, ok)
	assert.Equal(t, DefaultSchool, pair)

	pair, ok = c.resolve("SCHOOL: ENS / HTTC ")
	assert.True(t, ok)
	assert.Equal(t, types.BilingualPair{French: "ENS", English: "HTTC"}, pair)
}

func TestNewSchema_Validation(t *testing.T) {
	base := DefaultSchema()

	t.Run("built-in schema round trips", func(t *testing.T) {
		s, err := NewSchema(base.Fields(), base.Composites())
		require.NoError(t, err)
		assert.Len(t, s.Fields(), len(ScalarFields))
		assert.Len(t, s.Composites(), len(CompositeFields))
	})

	t.Run("missing field", func(t *testing.T) {
		fields := base.Fields()[1:]
		_, err := NewSchema(fields, base.Composites())
		require.Error(t, err)
		assert.Contains(t, err.Error(), FieldDiplomaNumber)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate field", func(t *testing.T) {
		fields := append(base.Fields(), base.Fields()[0])
		_, err := NewSchema(fields, base.Composites())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("unknown field", func(t *testing.T) {
		fields := append(base.Fields(), FieldDescriptor{Name: "nationality", Matchers: []Matcher{NameSection()}})
		_, err := NewSchema(fields, base.Composites())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nationality")
	})

	t.Run("empty matcher chain", func(t *testing.T) {
		fields := base.Fields()
		fields[0].Matchers = nil
		_, err := NewSchema(fields, base.Composites())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no matchers")
	})

	t.Run("missing composite", func(t *testing.T) {
		_, err := NewSchema(base.Fields(), base.Composites()[:3])
		require.Error(t, err)
		assert.Contains(t, err.Error(), CompositeMinistry)
	})
}

func TestSchema_AccessorsReturnCopies(t *testing.T) {
	s := DefaultSchema()
	fields := s.Fields()
	fields[0].Matchers = nil

	assert.NotEmpty(t, s.Fields()[0].Matchers)
}

func TestSchema_WithDefaults(t *testing.T) {
	custom := types.BilingualPair{French: "UNIVERSITÉ DE DSCHANG", English: "THE UNIVERSITY OF DSCHANG"}

	s, err := DefaultSchema().WithDefaults(Defaults{University: custom})
	require.NoError(t, err)

	rec := New(s).Extract("")
	assert.Equal(t, custom, rec.Institution.Name)
	assert.Equal(t, DefaultSchool, rec.Institution.School, "zero pairs keep the standard default")
	assert.Equal(t, DefaultCertificateType, rec.CertificateType)

	// The receiver schema is untouched.
	assert.Equal(t, DefaultUniversity, Extract("").Institution.Name)
}

func TestSchema_WithDefaults_HalfPair(t *testing.T) {
	_, err := DefaultSchema().WithDefaults(Defaults{Ministry: types.BilingualPair{English: "MINISTRY"}})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, CompositeMinistry, schemaErr.Field)
}

func TestDefaults_Merge(t *testing.T) {
	custom := types.BilingualPair{French: "CERTIFICAT X GRADE", English: "SECONDARY X LEVEL"}

	merged := Defaults{CertificateType: custom}.Merge(StandardDefaults())
	assert.Equal(t, custom, merged.CertificateType)
	assert.Equal(t, DefaultUniversity, merged.University)
	assert.Equal(t, DefaultSchool, merged.School)
	assert.Equal(t, DefaultMinistry, merged.Ministry)
	assert.NoError(t, merged.Validate())
}

func TestSchemaError(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaError{Field: FieldGrade, Message: "invalid pattern", Cause: cause}

	assert.Equal(t, "schema error in grade: invalid pattern: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "schema error: oops", (&SchemaError{Message: "oops"}).Error())
}

func TestSchemaFor(t *testing.T) {
	s, err := SchemaFor(false, Defaults{}, Patterns{})
	require.NoError(t, err)
	assert.Len(t, s.Fields(), len(DefaultSchema().Fields()))
	assert.Len(t, s.Fields()[0].Matchers, len(DefaultSchema().Fields()[0].Matchers))

	legacy, err := SchemaFor(true, Defaults{}, Patterns{})
	require.NoError(t, err)
	total, legacyTotal := 0, 0
	for i := range s.Fields() {
		total += len(s.Fields()[i].Matchers)
		legacyTotal += len(legacy.Fields()[i].Matchers)
	}
	assert.Greater(t, legacyTotal, total)

	_, err = SchemaFor(true, Defaults{School: types.BilingualPair{French: "ENS"}}, Patterns{})
	assert.Error(t, err)
}

func TestSchemaFor_Patterns(t *testing.T) {
	schema, err := SchemaFor(false,
		Defaults{School: types.BilingualPair{French: "ENS DE MAROUA", English: "HTTC OF MAROUA"}},
		Patterns{
			Fields: map[string][]string{
				"grade":     {`(?i)Appréciation\s*:\s*(\w+)  `},
				"birthdate": {`Born on\s*(\d{2}/\d{2}/\d{4})`},
			},
			Composites: map[string]string{
				"university": `(UNIVERSITÉ DE \w+)(?s:.*?)(UNIVERSITY OF \w+)`,
			},
		})
	require.NoError(t, err)

	text := "Appréciation : Passable   Born on 01/02/1990\nUNIVERSITÉ DE DSCHANG / UNIVERSITY OF DSCHANG"
	rec, report := New(schema).ExtractWithReport(text)

	assert.Equal(t, "Passable", rec.Grade)
	assert.Equal(t, "01/02/1990", rec.BirthDate)
	assert.Equal(t, types.BilingualPair{French: "UNIVERSITÉ DE DSCHANG", English: "UNIVERSITY OF DSCHANG"}, rec.Institution.Name)
	assert.Equal(t, types.BilingualPair{French: "ENS DE MAROUA", English: "HTTC OF MAROUA"}, rec.Institution.School,
		"default overrides still apply")

	grade, ok := report.Outcome(FieldGrade)
	require.True(t, ok)
	assert.Equal(t, 1, grade.Matcher, "custom expressions run after the built-in one")

	// Built-in schemas are untouched.
	assert.Len(t, DefaultSchema().Fields()[8].Matchers, 1)
	assert.Equal(t, "", Extract(text).Grade)
}

func TestSchemaFor_PatternErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns Patterns
		wantMsg  string
	}{
		{"unknown field", Patterns{Fields: map[string][]string{"shoeSize": {`(\d+)`}}}, "schema error in shoeSize: unknown scalar field"},
		{"bad field pattern", Patterns{Fields: map[string][]string{"GRADE": {`(\w+`}}}, "schema error in grade: invalid pattern"},
		{"no group", Patterns{Fields: map[string][]string{"series": {`Série`}}}, "schema error in series: pattern has no capture group"},
		{"unknown composite", Patterns{Composites: map[string]string{"faculty": `(a)(b)`}}, "schema error in faculty: unknown composite"},
		{"composite needs two groups", Patterns{Composites: map[string]string{"ministry": `(MINISTÈRE)`}}, "schema error in institution.ministry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchemaFor(false, Defaults{}, tt.patterns)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, err.Error(), tt.patterns.Validate().Error())
		})
	}

	assert.NoError(t, Patterns{}.Validate())
	assert.True(t, Patterns{}.IsZero())
}
