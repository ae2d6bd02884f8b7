package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrExtractionFailed = errors.New("failed to extract text")
)

type DocumentKind string

const (
	DocumentPDF  DocumentKind = ".pdf"
	DocumentDocx DocumentKind = ".docx"
)

// Document is an uploaded file held in memory for the duration of one request.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// KindFromName resolves the decoder kind from the file-name suffix, ignoring case.
func KindFromName(name string) (DocumentKind, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case string(DocumentPDF):
		return DocumentPDF, nil
	case string(DocumentDocx):
		return DocumentDocx, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
}

type Decoder interface {
	Decode(data []byte) (string, error)
}

type ExtractorService interface {
	Extract(doc *Document) (string, error)
}

type extractorService struct {
	decoders map[DocumentKind]Decoder
}

func NewExtractorService() ExtractorService {
	return NewExtractorServiceWithDecoders(map[DocumentKind]Decoder{
		DocumentPDF:  NewPDFDecoder(),
		DocumentDocx: NewDocxDecoder(),
	})
}

func NewExtractorServiceWithDecoders(decoders map[DocumentKind]Decoder) ExtractorService {
	return &extractorService{decoders: decoders}
}

// Extract implements ExtractorService. Decoder errors and panics are both
// reported as ErrExtractionFailed.
func (e *extractorService) Extract(doc *Document) (text string, err error) {
	kind, err := KindFromName(doc.Name)
	if err != nil {
		return "", err
	}

	decoder, ok := e.decoders[kind]
	if !ok {
		return "", fmt.Errorf("%w: no decoder for %s", ErrUnsupportedType, kind)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: decoder panic: %v", ErrExtractionFailed, r)
		}
	}()

	text, err = decoder.Decode(doc.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	return text, nil
}

type pdfDecoder struct{}

func NewPDFDecoder() Decoder {
	return &pdfDecoder{}
}

func (p *pdfDecoder) Decode(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}

type docxDecoder struct{}

func NewDocxDecoder() Decoder {
	return &docxDecoder{}
}

func (d *docxDecoder) Decode(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX: %w", err)
	}

	return strings.TrimSpace(text), nil
}
