package transcript

// Grade is a letter grade symbol as printed on a grade report.
type Grade string

const (
	GradeO     Grade = "O"
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Grades lists the scale from highest to lowest.
var Grades = []Grade{GradeO, GradeAPlus, GradeA, GradeBPlus, GradeB, GradeC, GradeD, GradeF}

var gradePoints = map[Grade]int{
	GradeO:     10,
	GradeAPlus: 9,
	GradeA:     8,
	GradeBPlus: 7,
	GradeB:     6,
	GradeC:     5,
	GradeD:     4,
	GradeF:     0,
}

var gradeLabels = map[Grade]string{
	GradeO:     "Outstanding",
	GradeAPlus: "Excellent",
	GradeA:     "Very Good",
	GradeBPlus: "Good",
	GradeB:     "Above Average",
	GradeC:     "Average",
	GradeD:     "Pass",
	GradeF:     "Fail",
}

// ParseGrade maps a printed symbol onto the scale. Matching is case-sensitive.
func ParseGrade(s string) (Grade, bool) {
	g := Grade(s)
	return g, g.Valid()
}

func (g Grade) Valid() bool {
	_, ok := gradePoints[g]
	return ok
}

// Points returns the nominal grade point for g on the fixed scale.
// Records are never checked against it; the transcript is the authority.
func (g Grade) Points() (int, bool) {
	p, ok := gradePoints[g]
	return p, ok
}

// Label is the descriptive name of the grade, e.g. "Outstanding" for O.
func (g Grade) Label() string {
	return gradeLabels[g]
}

func (g Grade) String() string {
	return string(g)
}
