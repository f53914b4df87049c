package dto

import "github.com/faizanfirdousi/roast-my-gpa/internal/service"

// User-facing error messages. The frontend renders them verbatim.
const (
	MsgNoFile           = "No file uploaded."
	MsgNotPDF           = "Not a PDF file!"
	MsgFileTooLarge     = "File too large."
	MsgNoSubjects       = "Could not parse any subjects and grades from the PDF."
	MsgProcessingFailed = "Failed to process the PDF."
)

const IndexMessage = "Hello from the backend API!"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RoastResponse struct {
	Roast     string `json:"roast"`
	RequestID int64  `json:"request_id,string"`
	Cached    bool   `json:"cached"`
}

func ToRoastResponse(r *service.RoastResult) RoastResponse {
	return RoastResponse{
		Roast:     r.Roast,
		RequestID: r.RequestID,
		Cached:    r.Cached,
	}
}
