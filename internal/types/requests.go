package types

import (
	"github.com/go-playground/validator/v10"
)

// ExtractRequest is the body accepted by the extraction endpoint.
type ExtractRequest struct {
	Text   string `json:"text" validate:"required"`
	HTML   bool   `json:"html,omitempty"`
	Legacy bool   `json:"legacy,omitempty"`
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FieldOutcome records how a single field was resolved.
type FieldOutcome struct {
	Field   string `json:"field" yaml:"field"`
	Matched bool   `json:"matched" yaml:"matched"`
	// Matcher is the index in the field's matcher chain that produced the value, -1 on fallback.
	Matcher int `json:"matcher" yaml:"matcher"`
}

// ExtractResponse is returned by the extraction endpoint.
type ExtractResponse struct {
	ID     string         `json:"id"`
	Record *DiplomaRecord `json:"record"`
	Report []FieldOutcome `json:"report"`
}
