package transcript

import (
	"regexp"
	"strings"
)

// GpaSnapshot holds the summary GPA figures printed on a grade report.
// GPA is the first labelled figure, verbatim; Lines are every CGPA/SGPA line in
// document order. The two are not cross-checked.
type GpaSnapshot struct {
	GPA   *string  `json:"gpa"`
	Lines []string `json:"gpaLines"`
}

var (
	reGPAFigure = regexp.MustCompile(`(?i)(?:CGPA|SGPA|GPA)\s*:\s*(\d+(?:\.\d{1,2})?)`)
	reGPALine   = regexp.MustCompile(`(?i)CGPA|SGPA`)
)

// ExtractGPA scans the raw extracted text, before normalization, for GPA
// information. A missing figure leaves GPA nil.
func ExtractGPA(raw string) GpaSnapshot {
	snap := GpaSnapshot{Lines: make([]string, 0)}

	if m := reGPAFigure.FindStringSubmatch(raw); m != nil {
		gpa := m[1]
		snap.GPA = &gpa
	}

	for _, line := range splitLines(raw) {
		if reGPALine.MatchString(line) {
			snap.Lines = append(snap.Lines, strings.TrimSpace(line))
		}
	}
	return snap
}

// HasGPA reports whether an overall figure was found.
func (s GpaSnapshot) HasGPA() bool {
	return s.GPA != nil
}

// Block joins the trend lines with newlines.
func (s GpaSnapshot) Block() string {
	return strings.Join(s.Lines, "\n")
}
