package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	ContentTypeText = "text/plain"
	ContentTypePDF  = "application/pdf"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

const (
	MsgTextLoaded      = "Text file loaded successfully."
	MsgTextReadFailed  = "Failed to read text file."
	MsgFileParsed      = "File parsed successfully! Text loaded below."
	MsgUploadFailed    = "Error uploading file. Please try again."
	MsgUnsupportedType = "Unsupported file type. Please upload .txt, .pdf, or .docx."
)

type acquisition int

const (
	acquireUnsupported acquisition = iota
	acquireLocalText
	acquireExtraction
)

func classifyContentType(contentType string) acquisition {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case ContentTypeText:
		return acquireLocalText
	case ContentTypePDF, ContentTypeDocx:
		return acquireExtraction
	default:
		return acquireUnsupported
	}
}

// LoadResumeFile fills the resume buffer from a selected file. The declared
// content type picks the path: plain text is read locally, PDF and Word
// documents go to the extraction service, anything else is rejected.
// A new selection always supersedes an earlier one still in flight.
func (s *Session) LoadResumeFile(ctx context.Context, name, contentType string, r io.Reader) error {
	s.mu.Lock()
	ctx, seq, finish, _ := s.beginLocked(ctx, OpUpload, false)
	s.mu.Unlock()
	defer finish()

	switch classifyContentType(contentType) {
	case acquireLocalText:
		return s.loadLocalText(seq, r)
	case acquireExtraction:
		return s.loadViaExtraction(ctx, seq, name, r)
	default:
		clearResume := func() { s.resumeText = "" }
		if !s.settle(OpUpload, seq, failed(models.KindUnsupportedType, MsgUnsupportedType), clearResume) {
			return ErrSuperseded
		}
		return fmt.Errorf("%w: %s", services.ErrUnsupportedType, contentType)
	}
}

func (s *Session) loadLocalText(seq uint64, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		clearResume := func() { s.resumeText = "" }
		if !s.settle(OpUpload, seq, failed(models.KindReadError, MsgTextReadFailed), clearResume) {
			return ErrSuperseded
		}
		return fmt.Errorf("failed to read text file: %w", err)
	}

	text := string(data)
	if !s.settle(OpUpload, seq, succeeded(models.KindNone, MsgTextLoaded), func() { s.resumeText = text }) {
		return ErrSuperseded
	}
	return nil
}

func (s *Session) loadViaExtraction(ctx context.Context, seq uint64, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		if !s.settle(OpUpload, seq, failed(models.KindUploadFailed, MsgUploadFailed), nil) {
			return ErrSuperseded
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	log.Printf("📄 Uploading %s (%d bytes) for extraction\n", name, len(data))
	text, err := s.deps.Extractor.Extract(ctx, name, data)
	if err != nil {
		log.Printf("❌ Upload of %s failed: %v\n", name, err)
		if !s.settle(OpUpload, seq, failed(models.KindUploadFailed, uploadFailureMessage(err)), nil) {
			return ErrSuperseded
		}
		return err
	}

	if !s.settle(OpUpload, seq, succeeded(models.KindParsedOk, MsgFileParsed), func() { s.resumeText = text }) {
		return ErrSuperseded
	}
	return nil
}

func uploadFailureMessage(err error) string {
	var uploadErr *services.UploadError
	if errors.As(err, &uploadErr) && uploadErr.Message != "" {
		return uploadErr.Message
	}
	return MsgUploadFailed
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
