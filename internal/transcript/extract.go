// Package transcript turns the text layer of a tabular grade report into
// per-subject grade records and summary GPA figures.
//
// Everything here is a pure function of its input: no I/O, no shared state,
// safe for concurrent use. Extraction failures are data (an empty record list
// or a nil GPA), never errors.
package transcript

import "errors"

// ErrNoRecords is returned by callers that treat an extraction without any
// subject rows as a failure.
var ErrNoRecords = errors.New("no grade records found")

// ExtractionResult is everything derived from one document.
type ExtractionResult struct {
	Records []GradeRecord `json:"records"`
	GPA     GpaSnapshot   `json:"gpa"`
}

// Extract runs the full pipeline over raw extracted text. Subject rows are
// matched on the normalized text, GPA figures on the raw text.
func Extract(raw string) ExtractionResult {
	return ExtractionResult{
		Records: ExtractRecords(Normalize(raw)),
		GPA:     ExtractGPA(raw),
	}
}

// Empty reports whether no subject rows were found.
func (r ExtractionResult) Empty() bool {
	return len(r.Records) == 0
}

// TermWorkCount returns how many records are term-work components.
func (r ExtractionResult) TermWorkCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.IsTermWork {
			n++
		}
	}
	return n
}
