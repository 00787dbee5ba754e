package extraction

import "github.com/jonathan/diploma-scanner/internal/types"

// Report describes how each field of one extraction was resolved.
type Report struct {
	Outcomes []types.FieldOutcome
}

// Matched counts fields resolved from the text.
func (r Report) Matched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Matched {
			n++
		}
	}
	return n
}

// Fallbacks lists the fields that took their default, in schema order.
func (r Report) Fallbacks() []string {
	var out []string
	for _, o := range r.Outcomes {
		if !o.Matched {
			out = append(out, o.Field)
		}
	}
	return out
}

// Outcome looks up a single field's outcome.
func (r Report) Outcome(field string) (types.FieldOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Field == field {
			return o, true
		}
	}
	return types.FieldOutcome{}, false
}
