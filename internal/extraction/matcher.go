package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// spaceMembers is the Unicode space set that \s stands for in every pattern.
// PDF text routinely carries U+00A0 before French colons and U+FEFF at page starts.
const spaceMembers = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

const (
	unicodeSpace    = `[` + spaceMembers + `]`
	unicodeNonSpace = `[^` + spaceMembers + `]`

	// lineChar is any character that does not end a line.
	lineChar = `[^\n\r\x{2028}\x{2029}]`
)

// Matcher resolves one value from a document's text.
// ok is false when the text does not contain the value.
type Matcher interface {
	Match(text string) (value string, ok bool)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(text string) (string, bool)

// Match calls f(text).
func (f MatcherFunc) Match(text string) (string, bool) {
	return f(text)
}

// patternMatcher returns the first capture group of re.
type patternMatcher struct {
	re   *regexp.Regexp
	trim bool
}

func (m *patternMatcher) Match(text string) (string, bool) {
	sub := m.re.FindStringSubmatch(text)
	if len(sub) < 2 {
		return "", false
	}
	value := sub[1]
	if m.trim {
		value = trimSpace(value)
	}
	if value == "" {
		return "", false
	}
	return value, true
}

func (m *patternMatcher) String() string {
	return m.re.String()
}

// compileExpr compiles expr after widening \s and \S to spaceMembers.
func compileExpr(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(widenSpaces(expr))
}

// widenSpaces rewrites the \s and \S escapes of expr. Inside a character
// class \s becomes the bare member list; \S inside a class keeps its ASCII
// meaning. Escaped backslashes, \Q...\E literals and [:name:] classes are
// copied unchanged.
func widenSpaces(expr string) string {
	var sb strings.Builder
	inClass := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			next := expr[i+1]
			switch {
			case next == 's' && inClass:
				sb.WriteString(spaceMembers)
			case next == 's':
				sb.WriteString(unicodeSpace)
			case next == 'S' && !inClass:
				sb.WriteString(unicodeNonSpace)
			case next == 'Q' && !inClass:
				end := strings.Index(expr[i+2:], `\E`)
				if end < 0 {
					sb.WriteString(expr[i:])
					return sb.String()
				}
				sb.WriteString(expr[i : i+2+end+2])
				i += 2 + end + 1
				continue
			default:
				sb.WriteByte(c)
				sb.WriteByte(next)
			}
			i++
		case c == '[' && !inClass:
			inClass = true
			sb.WriteByte(c)
			if i+1 < len(expr) && expr[i+1] == '^' {
				sb.WriteByte('^')
				i++
			}
			// A ']' right after the opening bracket is a member.
			if i+1 < len(expr) && expr[i+1] == ']' {
				sb.WriteByte(']')
				i++
			}
		case c == '[' && inClass && strings.HasPrefix(expr[i:], "[:"):
			end := strings.Index(expr[i+2:], ":]")
			if end < 0 {
				sb.WriteByte(c)
				continue
			}
			sb.WriteString(expr[i : i+2+end+2])
			i += 2 + end + 1
		case c == ']' && inClass:
			inClass = false
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func mustCompile(expr string) *regexp.Regexp {
	re, err := compileExpr(expr)
	if err != nil {
		panic("extraction: bad built-in pattern " + expr + ": " + err.Error())
	}
	return re
}

// Pattern builds a Matcher from expr. The first capture group is the value,
// returned exactly as captured.
func Pattern(expr string) (Matcher, error) {
	return newPattern(expr, false)
}

// TrimmedPattern is like Pattern but trims surrounding whitespace from the value.
func TrimmedPattern(expr string) (Matcher, error) {
	return newPattern(expr, true)
}

func newPattern(expr string, trim bool) (Matcher, error) {
	re, err := compileExpr(expr)
	if err != nil {
		return nil, &SchemaError{Message: "invalid pattern " + expr, Cause: err}
	}
	if re.NumSubexp() < 1 {
		return nil, &SchemaError{Message: "pattern has no capture group: " + expr}
	}
	return &patternMatcher{re: re, trim: trim}, nil
}

func mustPattern(expr string, trim bool) Matcher {
	return &patternMatcher{re: mustCompile(expr), trim: trim}
}

// firstMatch evaluates chain in order and stops at the first match.
// The returned index is -1 when nothing matched.
func firstMatch(chain []Matcher, text string) (string, int) {
	for i, m := range chain {
		if value, ok := m.Match(text); ok {
			return value, i
		}
	}
	return "", -1
}

// isSpace matches the characters JavaScript's trim removes: unicode.IsSpace
// without U+0085, plus U+FEFF.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
