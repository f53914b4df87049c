package service

import (
	"fmt"
	"strings"

	"github.com/faizanfirdousi/roast-my-gpa/internal/transcript"
)

const roastSystemPrompt = `You write short comedic roasts of student grade reports.
Reply with a JSON object whose "roast" field holds the roast as plain text.`

const roastPersona = `You are a savage roaster. Your job is to roast the user's academic performance based on their grades. Be brutally honest, savage, and funny. Use some Hinglish (Hindi words in English script) abusive words to make it more impactful.`

const roastInstructions = `Now, roast the user. IMPORTANT: A subject ending with subject code TW is the internal/practical part of the main theory subject with the same name. They are NOT repeated subjects. You should be extra critical of high grades in 'Term Work' subjects as they are generally easier to score in. Analyze user's semester-wise GPA trend. If their GPA improved, give a backhanded compliment. If it dropped, be extra brutal. If the user has high marks overall, roast them for being a bookworm with no life. If they have low marks, well, you know what to do. The roast should be short, direct, and savage, at last give them reality and personality check based on subjects they are good at and subjects they are bad at.`

// BuildRoastPrompt renders the roast request for one extraction.
func BuildRoastPrompt(result transcript.ExtractionResult) string {
	var sb strings.Builder

	sb.WriteString(roastPersona)
	sb.WriteString("\n\nHere is the grading scale for reference, there's only these grades , nothing else than this\n")
	for _, g := range transcript.Grades {
		points, _ := g.Points()
		sb.WriteString(fmt.Sprintf("%s: %d (%s)\n", g, points, g.Label()))
	}

	sb.WriteString("\nHere are the user's grades:\n")
	for i, rec := range result.Records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(formatRecord(rec))
	}

	sb.WriteString("\n\nHere is the user's GPA information:\n")
	if result.GPA.HasGPA() {
		sb.WriteString(fmt.Sprintf("Overall GPA: %s\n", *result.GPA.GPA))
	}
	sb.WriteString(result.GPA.Block())

	sb.WriteString("\n\n")
	sb.WriteString(roastInstructions)

	return strings.TrimSpace(sb.String())
}

func formatRecord(rec transcript.GradeRecord) string {
	termWork := ""
	if rec.IsTermWork {
		termWork = " (Term Work)"
	}
	return fmt.Sprintf("- %s%s: %s (Grade Point: %d)", rec.Code, termWork, rec.Grade, rec.GradePoint)
}
