package extraction

import "github.com/jonathan/diploma-scanner/internal/types"

// Known-good pairs used when a bilingual composite cannot be matched.
var (
	DefaultCertificateType = types.BilingualPair{
		French:  "CERTIFICAT DE PROFESSEUR DE L'ENSEIGNEMENT SECONDAIRE, 2ème GRADE",
		English: "SECONDARY AND HIGH SCHOOL TEACHER'S CERTIFICATE, 2nd LEVEL",
	}
	DefaultUniversity = types.BilingualPair{
		French:  "UNIVERSITÉ DE BERTOUA",
		English: "THE UNIVERSITY OF BERTOUA",
	}
	DefaultSchool = types.BilingualPair{
		French:  "ÉCOLE NORMALE SUPÉRIEURE DE BERTOUA",
		English: "HIGHER TEACHER TRAINING COLLEGE OF BERTOUA",
	}
	DefaultMinistry = types.BilingualPair{
		French:  "MINISTÈRE DE L'ENSEIGNEMENT SUPÉRIEUR",
		English: "THE MINISTRY OF HIGHER EDUCATION",
	}
)

// Defaults is the table of composite fallback pairs.
type Defaults struct {
	CertificateType types.BilingualPair `json:"certificate_type" mapstructure:"certificate_type"`
	University      types.BilingualPair `json:"university" mapstructure:"university"`
	School          types.BilingualPair `json:"school" mapstructure:"school"`
	Ministry        types.BilingualPair `json:"ministry" mapstructure:"ministry"`
}

// StandardDefaults returns the built-in fallback table.
func StandardDefaults() Defaults {
	return Defaults{
		CertificateType: DefaultCertificateType,
		University:      DefaultUniversity,
		School:          DefaultSchool,
		Ministry:        DefaultMinistry,
	}
}

// Validate rejects half-filled pairs. A zero pair means "keep the standard default".
func (d Defaults) Validate() error {
	for name, p := range d.byComposite() {
		if (p.French == "") != (p.English == "") {
			return &SchemaError{
				Field:   name,
				Message: "default pair must set both french and english, or neither",
			}
		}
	}
	return nil
}

// Merge returns d with zero pairs filled from base.
func (d Defaults) Merge(base Defaults) Defaults {
	if d.CertificateType.IsZero() {
		d.CertificateType = base.CertificateType
	}
	if d.University.IsZero() {
		d.University = base.University
	}
	if d.School.IsZero() {
		d.School = base.School
	}
	if d.Ministry.IsZero() {
		d.Ministry = base.Ministry
	}
	return d
}

func (d Defaults) byComposite() map[string]types.BilingualPair {
	return map[string]types.BilingualPair{
		CompositeCertificateType: d.CertificateType,
		CompositeUniversity:      d.University,
		CompositeSchool:          d.School,
		CompositeMinistry:        d.Ministry,
	}
}
