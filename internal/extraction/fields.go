package extraction

// Scalar field names, equal to their JSON keys in types.DiplomaRecord.
const (
	FieldDiplomaNumber      = "diplomaNumber"
	FieldName               = "name"
	FieldBirthDate          = "birthDate"
	FieldBirthPlace         = "birthPlace"
	FieldGender             = "gender"
	FieldRegistrationNumber = "registrationNumber"
	FieldSpecialization     = "specialization"
	FieldSeries             = "series"
	FieldGrade              = "grade"
	FieldIssueDate          = "issueDate"
	FieldSessionDate        = "sessionDate"
)

// Composite names, as dotted JSON paths.
const (
	CompositeCertificateType = "certificateType"
	CompositeUniversity      = "institution.name"
	CompositeSchool          = "institution.school"
	CompositeMinistry        = "institution.ministry"
)

// ScalarFields lists every scalar field in declaration order.
var ScalarFields = []string{
	FieldDiplomaNumber,
	FieldName,
	FieldBirthDate,
	FieldBirthPlace,
	FieldGender,
	FieldRegistrationNumber,
	FieldSpecialization,
	FieldSeries,
	FieldGrade,
	FieldIssueDate,
	FieldSessionDate,
}

// CompositeFields lists every bilingual composite in declaration order.
var CompositeFields = []string{
	CompositeCertificateType,
	CompositeUniversity,
	CompositeSchool,
	CompositeMinistry,
}

// Authoritative label patterns. The French label text is matched with its accents.
// Captures that stop at a line end use lineChar so \r and U+2028 end a line too.
const (
	exprDiplomaNumber      = `N° (DIP-\d+-[A-Z0-9]+-\d+)`
	exprBirthDate          = `Né\(e\) le\s*:\s*(\d{2}/\d{2}/\d{4})`
	exprBirthPlace         = `à\s+([A-Z]+)`
	exprGender             = `Sexe\s*/\s*Gender\s*:\s*(\w)`
	exprRegistrationNumber = `N° Matricule\s*:\s*(\w+)`
	exprSpecialization     = `(?i)Domaine\s*:\s*(` + lineChar + `+?)\s{2,}`
	exprSeries             = `(?i)Filière\s*:\s*(` + lineChar + `+?)\s{2,}`
	exprGrade              = `(?i)Mention\s*:\s*(` + lineChar + `+?)\s{2,}`
	exprIssueDate          = `le\s*:\s*(\d{4}-\d{2}-\d{2})`
	exprSessionDate        = `(?is)session de :.*?((?:JANVIER|FÉVRIER|MARS|AVRIL|MAI|JUIN|JUILLET|AOÛT|SEPTEMBRE|OCTOBRE|NOVEMBRE|DÉCEMBRE) \d{4})`
)

// LegacyPatterns holds the stricter label patterns that earlier document
// layouts were parsed with. They were superseded by the authoritative
// patterns above and are only consulted by LegacySchema, after the
// authoritative pattern has failed.
var LegacyPatterns = map[string]string{
	FieldBirthDate:          `Né\(e\) le : (\d{2}/\d{2}/\d{4})`,
	FieldBirthPlace:         `à ([\wÀ-ÿ]+) at`,
	FieldGender:             `Sexe / Gender : ([MF])`,
	FieldRegistrationNumber: `N° Matricule : ([A-Z0-9]+-\d+)`,
	FieldSpecialization:     `Domaine : ([A-Za-zÀ-ú]+) Specialization`,
	FieldSeries:             `Filière : ([A-Za-zÀ-ú]+) Series`,
	FieldGrade:              `Mention : ([A-Za-zÀ-ú]+) Grade`,
	FieldIssueDate:          `Fait à Bertoua, le : (\d{4}-\d{2}-\d{2})`,
}

// Bilingual composite patterns: French anchor, any gap, English anchor.
const (
	exprCertificateType = `(?is)(CERTIFICAT DE.*?GRADE).*?(SECONDARY.*?LEVEL)`
	exprUniversity      = `(?i)(UNIVERSITÉ DE \w+)(?s:.*?)(THE UNIVERSITY OF \w+)`
	exprSchool          = `(?i)(ÉCOLE NORMALE SUPÉRIEURE DE \w+)(?s:.*?)(HIGHER TEACHER TRAINING COLLEGE OF \w+)`
	exprMinistry        = `(?i)(MINISTÈRE DE L'ENSEIGNEMENT SUPÉRIEUR)(?s:.*?)(THE MINISTRY OF HIGHER EDUCATION)`
)
