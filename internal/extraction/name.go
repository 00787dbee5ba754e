package extraction

import "strings"

const (
	nameSectionMarker    = "Délivré à Mr./Mme. :"
	englishSectionMarker = "Issued to Mr./Mrs."
)

var nameLabel = mustCompile(`Délivré à Mr\./Mme\. : (` + lineChar + `+)`)

// NameSection returns the Matcher for the holder's name.
//
// The name is read only from the French "Délivré à" section, cut off before
// the English "Issued to" duplicate. The whole document is never searched, so
// the English phrase elsewhere in the text cannot produce a false match.
// A marker at byte 0 does not open a section.
func NameSection() Matcher {
	return MatcherFunc(matchNameSection)
}

func matchNameSection(text string) (string, bool) {
	section, ok := nameSection(text)
	if !ok {
		return "", false
	}
	sub := nameLabel.FindStringSubmatch(section)
	if sub == nil {
		return "", false
	}
	// A label followed only by blanks still counts as a match: the holder's
	// name is present but empty, which is distinct from a missing section.
	return trimSpace(sub[1]), true
}

// nameSection isolates the text between the first section marker past byte 0
// and the next marker, truncated at the English duplicate.
func nameSection(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}
	i := strings.Index(text[1:], nameSectionMarker)
	if i < 0 {
		return "", false
	}
	section := text[i+1:]

	if next := strings.Index(section[len(nameSectionMarker):], nameSectionMarker); next >= 0 {
		section = section[:len(nameSectionMarker)+next]
	}
	if cut := strings.Index(section, englishSectionMarker); cut >= 0 {
		section = section[:cut]
	}
	return section, true
}
