package transcript

import (
	"regexp"
	"strings"
)

var (
	// A line ending in "-" whose continuation starts with a code-like character.
	reHyphenWrap = regexp.MustCompile(`-\r?\n([A-Z0-9_])`)

	// Two or more single-letter words separated by horizontal whitespace: "D A T A".
	reSpacedLetters = regexp.MustCompile(`\b[A-Za-z](?:[ \t]+[A-Za-z]\b)+`)

	reHorizontalSpace = regexp.MustCompile(`[ \t]+`)
)

// Normalize repairs the layout artifacts text extraction leaves in grade
// reports before they are matched line by line. It never fails; text without
// artifacts is returned unchanged.
func Normalize(raw string) string {
	return CollapseSpacedLetters(RepairHyphenWraps(raw))
}

// RepairHyphenWraps joins subject codes that were wrapped after a hyphen,
// keeping the hyphen: "CS-\n101" becomes "CS-101".
func RepairHyphenWraps(s string) string {
	return reHyphenWrap.ReplaceAllString(s, "-$1")
}

// CollapseSpacedLetters undoes character-level justification spacing by
// removing the whitespace inside runs of single letters ("D A T A" -> "DATA").
//
// This is lossy: genuinely separate one-letter words ("PART A B") are merged
// too. It never joins across a line break.
func CollapseSpacedLetters(s string) string {
	return reSpacedLetters.ReplaceAllStringFunc(s, func(run string) string {
		return reHorizontalSpace.ReplaceAllString(run, "")
	})
}

// splitLines splits on \n and drops a trailing \r from each line. Empty lines
// are kept so line order matches the source.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
