package models

type OperationPhase string

const (
	PhaseIdle      OperationPhase = "idle"
	PhasePending   OperationPhase = "pending"
	PhaseSucceeded OperationPhase = "succeeded"
	PhaseFailed    OperationPhase = "failed"
)

type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindMissingFile      ErrorKind = "MissingFile"
	KindUnsupportedType  ErrorKind = "UnsupportedType"
	KindFileTooLarge     ErrorKind = "FileTooLarge"
	KindExtractionFailed ErrorKind = "ExtractionFailed"
	KindReadError        ErrorKind = "ReadError"
	KindUploadFailed     ErrorKind = "UploadFailed"
	KindAnalysisError    ErrorKind = "AnalysisError"
	KindChatError        ErrorKind = "ChatError"

	// KindParsedOk marks a successful upload; it carries a message but is not an error.
	KindParsedOk ErrorKind = "ParsedOk"
)

// OperationStatus is the single source of truth for one operation kind.
// Each new attempt overwrites it.
type OperationStatus struct {
	Phase   OperationPhase `json:"phase"`
	Kind    ErrorKind      `json:"kind,omitempty"`
	Message string         `json:"message,omitempty"`
}

func (s OperationStatus) Pending() bool {
	return s.Phase == PhasePending
}

func (s OperationStatus) Failed() bool {
	return s.Phase == PhaseFailed
}
