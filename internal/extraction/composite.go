package extraction

import (
	"regexp"

	"github.com/jonathan/diploma-scanner/internal/types"
)

// CompositeDescriptor describes a bilingual pair read with a single pattern
// whose first group is the French anchor and whose second is the English one.
type CompositeDescriptor struct {
	Name    string
	Pattern *regexp.Regexp
	Default types.BilingualPair
}

// NewComposite compiles expr into a CompositeDescriptor.
func NewComposite(name, expr string, def types.BilingualPair) (CompositeDescriptor, error) {
	re, err := compileExpr(expr)
	if err != nil {
		return CompositeDescriptor{}, &SchemaError{Field: name, Message: "invalid pattern", Cause: err}
	}
	if re.NumSubexp() < 2 {
		return CompositeDescriptor{}, &SchemaError{Field: name, Message: "pattern needs a french and an english group"}
	}
	if def.French == "" || def.English == "" {
		return CompositeDescriptor{}, &SchemaError{Field: name, Message: "default pair must set both french and english"}
	}
	return CompositeDescriptor{Name: name, Pattern: re, Default: def}, nil
}

// resolve returns the matched pair, or the default when either half is missing.
// The result is never a mix of matched and default halves.
func (c CompositeDescriptor) resolve(text string) (types.BilingualPair, bool) {
	sub := c.Pattern.FindStringSubmatch(text)
	if len(sub) < 3 {
		return c.Default, false
	}
	pair := types.BilingualPair{
		French:  trimSpace(sub[1]),
		English: trimSpace(sub[2]),
	}
	if pair.French == "" || pair.English == "" {
		return c.Default, false
	}
	return pair, true
}
