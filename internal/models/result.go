package models

type UploadResponse struct {
	ParsedText string `json:"parsedText"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTP messages returned by the extraction endpoint.
const (
	MsgNoFileUploaded      = "No file uploaded"
	MsgUnsupportedFileType = "Unsupported file type"
	MsgFileTooLarge        = "File too large"
	MsgFailedToParse       = "Failed to parse file"
)
