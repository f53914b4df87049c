package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizanfirdousi/roast-my-gpa/common/logger"
	"github.com/faizanfirdousi/roast-my-gpa/internal/http/dto"
	"github.com/faizanfirdousi/roast-my-gpa/internal/pdftext"
	"github.com/faizanfirdousi/roast-my-gpa/internal/service"
)

const (
	uploadField = "transcript"
	pdfMimeType = "application/pdf"

	// multipartOverhead is body room reserved for boundaries and part headers.
	multipartOverhead = 1 << 20
)

type TranscriptHandler struct {
	roasts         service.RoastService
	extracts       service.ExtractService
	pdf            pdftext.Extractor
	maxUploadBytes int64
}

func NewTranscriptHandler(roasts service.RoastService, extracts service.ExtractService, pdf pdftext.Extractor, maxUploadBytes int64) *TranscriptHandler {
	return &TranscriptHandler{
		roasts:         roasts,
		extracts:       extracts,
		pdf:            pdf,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *TranscriptHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, dto.IndexMessage)
}

// Upload roasts the uploaded grade report.
func (h *TranscriptHandler) Upload(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	result, err := h.roasts.Roast(ctx, service.RoastParams{
		FileName: upload.fileName,
		Text:     upload.text,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoSubjectsParsed) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNoSubjects})
			return
		}
		slog.ErrorContext(ctx, "roast failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgProcessingFailed})
		return
	}

	c.JSON(http.StatusOK, dto.ToRoastResponse(result))
}

// Extract returns the parsed records and GPA figures without generating a roast.
func (h *TranscriptHandler) Extract(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	result, err := h.extracts.Extract(ctx, upload.text)
	if err != nil {
		if errors.Is(err, service.ErrNoSubjectsParsed) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNoSubjects})
			return
		}
		slog.ErrorContext(ctx, "extraction failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgProcessingFailed})
		return
	}

	c.JSON(http.StatusOK, result)
}

type upload struct {
	fileName string
	text     string
}

// readUpload validates the multipart file and returns its text layer. On
// failure the response has already been written.
func (h *TranscriptHandler) readUpload(c *gin.Context) (upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgFileTooLarge})
			return upload{}, false
		}
		slog.WarnContext(c.Request.Context(), "no transcript in request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNoFile})
		return upload{}, false
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		FileName:  logger.Ptr(fh.Filename),
		Component: "http.transcript",
	})
	c.Request = c.Request.WithContext(ctx)

	if !isPDF(fh.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNotPDF})
		return upload{}, false
	}
	if fh.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgFileTooLarge})
		return upload{}, false
	}

	f, err := fh.Open()
	if err != nil {
		slog.ErrorContext(ctx, "failed to open upload", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgProcessingFailed})
		return upload{}, false
	}
	defer f.Close()

	text, err := h.pdf.Extract(ctx, f, fh.Size)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.MsgNoSubjects})
			return upload{}, false
		}
		slog.ErrorContext(ctx, "pdf text extraction failed", "error", err, "size", fh.Size)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgProcessingFailed})
		return upload{}, false
	}

	return upload{fileName: fh.Filename, text: text}, true
}

func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == pdfMimeType
}
