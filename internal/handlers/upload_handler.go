package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type UploadHandler struct {
	pool        services.ExtractionPool
	maxFileSize int64
	timeout     time.Duration
}

func NewUploadHandler(
	pool services.ExtractionPool,
	maxFileSize int64,
	timeout time.Duration,
) *UploadHandler {
	return &UploadHandler{
		pool:        pool,
		maxFileSize: maxFileSize,
		timeout:     timeout,
	}
}

// HandleUpload handles POST /api/upload-resume. Validation runs before any
// decoder is touched; the document lives only in memory. Bodies beyond the
// app's BodyLimit never reach it: fasthttp rejects them and ErrorHandler
// answers with the same FileTooLarge payload.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(services.UploadFieldName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.MsgNoFileUploaded,
		})
	}

	if _, err := services.KindFromName(fileHeader.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.MsgUnsupportedFileType,
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse{
			Error: models.MsgFileTooLarge,
		})
	}

	requestID := uuid.New()

	data, err := h.readFile(fileHeader)
	if errors.Is(err, errFileTooLarge) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse{
			Error: models.MsgFileTooLarge,
		})
	}
	if err != nil {
		log.Printf("❌ [%s] Failed to read upload %q: %v\n", requestID, fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.MsgFailedToParse,
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	text, err := h.pool.Submit(ctx, &services.Document{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		// Full detail stays in the log; the caller gets a generic message.
		log.Printf("❌ [%s] Failed to parse %q (%d bytes): %v\n", requestID, fileHeader.Filename, len(data), err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.MsgFailedToParse,
		})
	}

	log.Printf("✅ [%s] Parsed %q: %d characters\n", requestID, fileHeader.Filename, len(text))
	return c.JSON(models.UploadResponse{ParsedText: text})
}

var errFileTooLarge = errors.New("file exceeds size limit")

func (h *UploadHandler) readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > h.maxFileSize {
		return nil, errFileTooLarge
	}

	return data, nil
}
