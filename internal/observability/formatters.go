// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/diploma-scanner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
	// nullValue stands in for absent optional fields
	nullValue = "(null)"
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func optional(s *string) string {
	if s == nil {
		return nullValue
	}
	return *s
}

// PrintDiploma outputs a human-readable summary of an extracted record.
func (p *Printer) PrintDiploma(record *types.DiplomaRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Number:        %s\n", optional(record.DiplomaNumber)))
	sb.WriteString(fmt.Sprintf("Name:          %s\n", optional(record.Name)))
	sb.WriteString(fmt.Sprintf("Born:          %s, %s\n", record.BirthDate, record.BirthPlace))
	sb.WriteString(fmt.Sprintf("Gender:        %s\n", record.Gender))
	sb.WriteString(fmt.Sprintf("Registration:  %s\n", record.RegistrationNumber))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Field:         %s\n", record.Specialization))
	sb.WriteString(fmt.Sprintf("Series:        %s\n", record.Series))
	sb.WriteString(fmt.Sprintf("Grade:         %s\n", record.Grade))
	sb.WriteString(fmt.Sprintf("Session:       %s\n", optional(record.SessionDate)))
	sb.WriteString(fmt.Sprintf("Issued:        %s\n", record.IssueDate))
	sb.WriteString("\n")
	sb.WriteString("Certificate:\n")
	sb.WriteString(fmt.Sprintf("  FR %s\n", record.CertificateType.French))
	sb.WriteString(fmt.Sprintf("  EN %s\n", record.CertificateType.English))
	sb.WriteString("Institution:\n")
	sb.WriteString(fmt.Sprintf("  FR %s\n", record.Institution.Name.French))
	sb.WriteString(fmt.Sprintf("  EN %s", record.Institution.Name.English))

	p.printBox("EXTRACTED DIPLOMA", sb.String())
}

// PrintReport outputs which fields were read from the text and which fell back.
func (p *Printer) PrintReport(outcomes []types.FieldOutcome) {
	if len(outcomes) == 0 {
		return
	}

	matched := 0
	for _, o := range outcomes {
		if o.Matched {
			matched++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d of %d fields:\n\n", matched, len(outcomes)))
	for _, o := range outcomes {
		if o.Matched {
			sb.WriteString(fmt.Sprintf("✓ %-20s matcher #%d\n", o.Field, o.Matcher))
		} else {
			sb.WriteString(fmt.Sprintf("⚠ %-20s default\n", o.Field))
		}
	}

	p.printBox("EXTRACTION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRepoPage outputs one display page of the repository gallery.
func (p *Printer) PrintRepoPage(page *types.RepoPage) {
	if page == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page %d of %d (%d repositories)\n", page.Page, page.TotalPages, page.Total))

	count := min(len(page.Repos), maxItemsToShow)
	for i := 0; i < count; i++ {
		repo := page.Repos[i]
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s\n", repo.Index, repo.Name))
		sb.WriteString(fmt.Sprintf("    %s\n", truncate(repo.Description, 50)))
		if repo.Preview != nil {
			sb.WriteString("    [preview]\n")
		}
	}
	if len(page.Repos) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(page.Repos)-maxItemsToShow))
	}

	var nav []string
	if page.HasPrevious() {
		nav = append(nav, "← previous")
	}
	if page.HasNext() {
		nav = append(nav, "next →")
	}
	if len(nav) > 0 {
		sb.WriteString("\n" + strings.Join(nav, "   "))
	}

	p.printBox("REPOSITORIES", strings.TrimSuffix(sb.String(), "\n"))
}
