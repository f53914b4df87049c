package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

// GradeRecord is one subject line of a grade report.
type GradeRecord struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Grade      Grade  `json:"grade"`
	GradePoint int    `json:"gradePoint"`
	IsTermWork bool   `json:"isTermWork"`
}

// TermWorkSuffix marks the internal/practical component of a subject code.
const TermWorkSuffix = "_TW"

const (
	minGradePoint = 0
	maxGradePoint = 10
)

// Sub-patterns of a subject line. Each is a plain fragment without capture
// groups; recordLine names the captures when assembling them.
const (
	codePattern    = `\*?[A-Z0-9/\-_]+(?:_TW)?(?:-\d)?`
	namePattern    = `[A-Z][A-Z \t&,()\-]*[A-Z]`
	integerPattern = `\d+`
	gradePattern   = `O|[A-Z]\+?`
	pointPattern   = `\d+`
	wsPattern      = `[ \t]+`
)

type linePart struct {
	name    string
	pattern string
}

// recordLine is the layout of a subject row, left to right. Credits and
// earned credits are matched but not kept.
var recordLine = []linePart{
	{"code", codePattern},
	{"name", namePattern},
	{"credits", integerPattern},
	{"earned", integerPattern},
	{"grade", gradePattern},
	{"point", pointPattern},
}

var reRecordLine = compileLine(recordLine)

func compileLine(parts []linePart) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`^[ \t]*`)
	for i, p := range parts {
		if i > 0 {
			b.WriteString(wsPattern)
		}
		b.WriteString(`(?P<` + p.name + `>` + p.pattern + `)`)
	}
	b.WriteString(`(?:[ \t]|$)`)
	return regexp.MustCompile(b.String())
}

var (
	idxCode  = reRecordLine.SubexpIndex("code")
	idxName  = reRecordLine.SubexpIndex("name")
	idxGrade = reRecordLine.SubexpIndex("grade")
	idxPoint = reRecordLine.SubexpIndex("point")
)

// ExtractRecords scans normalized text line by line and returns a record for
// every line matching the subject-row layout, in line order. Lines that do not
// match in full are skipped; an empty result is not an error.
func ExtractRecords(normalized string) []GradeRecord {
	records := make([]GradeRecord, 0)
	for _, line := range splitLines(normalized) {
		if rec, ok := ParseRecordLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseRecordLine parses a single subject row. It reports false for lines
// that do not match, carry a grade symbol outside the scale, or a grade point
// that is not an integer in [0, 10].
func ParseRecordLine(line string) (GradeRecord, bool) {
	m := reRecordLine.FindStringSubmatch(line)
	if m == nil {
		return GradeRecord{}, false
	}

	grade, ok := ParseGrade(strings.TrimSpace(m[idxGrade]))
	if !ok {
		return GradeRecord{}, false
	}

	point, err := strconv.Atoi(m[idxPoint])
	if err != nil || point < minGradePoint || point > maxGradePoint {
		return GradeRecord{}, false
	}

	code := strings.TrimSpace(m[idxCode])
	return GradeRecord{
		Code:       code,
		Name:       strings.TrimSpace(m[idxName]),
		Grade:      grade,
		GradePoint: point,
		IsTermWork: strings.HasSuffix(code, TermWorkSuffix),
	}, true
}
