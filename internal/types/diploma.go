// Package types provides type definitions for structured data used throughout the diploma-scanner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BilingualPair holds the French and English renditions of the same statement.
type BilingualPair struct {
	French  string `json:"french" yaml:"french"`
	English string `json:"english" yaml:"english"`
}

// IsZero reports whether neither language is set.
func (p BilingualPair) IsZero() bool {
	return p.French == "" && p.English == ""
}

// Institution groups the issuing university, school and ministry.
type Institution struct {
	Name     BilingualPair `json:"name" yaml:"name"`
	School   BilingualPair `json:"school" yaml:"school"`
	Ministry BilingualPair `json:"ministry" yaml:"ministry"`
}

// DiplomaRecord is the structured form of one diploma's extracted text.
// The JSON keys are consumed verbatim by downstream views and must stay stable.
// Pointer fields serialize as null when absent; every key is always emitted.
type DiplomaRecord struct {
	DiplomaNumber      *string       `json:"diplomaNumber" yaml:"diplomaNumber"`
	Name               *string       `json:"name" yaml:"name"`
	BirthDate          string        `json:"birthDate" yaml:"birthDate"`
	BirthPlace         string        `json:"birthPlace" yaml:"birthPlace"`
	Gender             string        `json:"gender" yaml:"gender"`
	RegistrationNumber string        `json:"registrationNumber" yaml:"registrationNumber"`
	Specialization     string        `json:"specialization" yaml:"specialization"`
	Series             string        `json:"series" yaml:"series"`
	Grade              string        `json:"grade" yaml:"grade"`
	IssueDate          string        `json:"issueDate" yaml:"issueDate"`
	SessionDate        *string       `json:"sessionDate" yaml:"sessionDate"`
	CertificateType    BilingualPair `json:"certificateType" yaml:"certificateType"`
	Institution        Institution   `json:"institution" yaml:"institution"`
}

// StringValue dereferences an optional field, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
