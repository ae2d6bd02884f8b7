package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

var (
	// ErrBusy is returned when an analysis or chat call is already in flight.
	ErrBusy         = errors.New("operation already in progress")
	ErrEmptyResume  = errors.New("resume text is empty")
	ErrEmptyMessage = errors.New("chat message is empty")
	// ErrSuperseded means a reply arrived after a newer attempt or a reset
	// and was dropped without touching session state.
	ErrSuperseded = errors.New("reply superseded by a newer request")
)

type Operation string

const (
	OpUpload   Operation = "upload"
	OpAnalysis Operation = "analysis"
	OpChat     Operation = "chat"
)

const DefaultTimeout = 30 * time.Second

type Dependencies struct {
	Extractor services.ExtractionClient
	Gemini    services.GeminiService
	Parser    services.AnalysisParser
	Prompts   *services.PromptBuilder
}

// operation tracks one operation kind. seq grows with every attempt and every
// reset; a reply is applied only if it carries the latest seq. inFlight counts
// calls that have not returned yet, including ones abandoned by a reset.
type operation struct {
	status   models.OperationStatus
	seq      uint64
	inFlight int
	cancel   context.CancelFunc
}

func (o *operation) busy() bool {
	return o.inFlight > 0
}

// Session is the client-side state aggregate. All mutation goes through the
// transition methods below, which hold mu only while touching state and never
// across a network call.
type Session struct {
	id      uuid.UUID
	deps    Dependencies
	timeout time.Duration

	mu             sync.Mutex
	resumeText     string
	jobDescription string
	result         *models.AnalysisResult
	history        []models.ChatMessage
	ops            map[Operation]*operation
}

// State is an immutable copy of the session for rendering.
type State struct {
	ID             uuid.UUID
	ResumeText     string
	JobDescription string
	Result         *models.AnalysisResult
	History        []models.ChatMessage
	Upload         models.OperationStatus
	Analysis       models.OperationStatus
	Chat           models.OperationStatus
	CanAnalyze     bool
	CanChat        bool
}

func New(deps Dependencies, timeout time.Duration) *Session {
	if deps.Prompts == nil {
		deps.Prompts = services.NewPromptBuilder()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Session{
		id:      uuid.New(),
		deps:    deps,
		timeout: timeout,
		ops: map[Operation]*operation{
			OpUpload:   {status: idleStatus()},
			OpAnalysis: {status: idleStatus()},
			OpChat:     {status: idleStatus()},
		},
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) SetResumeText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeText = text
}

func (s *Session) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = text
}

// CanAnalyze reports whether the analyze action is enabled.
func (s *Session) CanAnalyze() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAnalyzeLocked()
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:             s.id,
		ResumeText:     s.resumeText,
		JobDescription: s.jobDescription,
		Result:         s.result.Clone(),
		History:        append([]models.ChatMessage(nil), s.history...),
		Upload:         s.ops[OpUpload].status,
		Analysis:       s.ops[OpAnalysis].status,
		Chat:           s.ops[OpChat].status,
		CanAnalyze:     s.canAnalyzeLocked(),
		CanChat:        !s.ops[OpChat].busy(),
	}
}

// Reset clears the whole session. Calls started before the reset are
// cancelled and their replies discarded when they arrive.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumeText = ""
	s.jobDescription = ""
	s.result = nil
	s.history = nil
	for _, op := range s.ops {
		if op.cancel != nil {
			op.cancel()
			op.cancel = nil
		}
		op.seq++
		op.status = idleStatus()
	}
}

func (s *Session) canAnalyzeLocked() bool {
	return !isBlank(s.resumeText) && !s.ops[OpAnalysis].busy()
}

// beginLocked moves op to pending and returns the attempt's context, bounded
// by the session timeout, and its sequence number. Exclusive operations refuse
// to start while an earlier call has not returned, even one abandoned by
// Reset; non-exclusive ones cancel and supersede it. The caller must run
// finish once its call has returned.
func (s *Session) beginLocked(ctx context.Context, op Operation, exclusive bool) (context.Context, uint64, func(), error) {
	o := s.ops[op]
	if exclusive && o.busy() {
		return nil, 0, nil, ErrBusy
	}
	if o.cancel != nil {
		o.cancel()
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	o.seq++
	o.inFlight++
	o.cancel = cancel
	o.status = models.OperationStatus{Phase: models.PhasePending}
	seq := o.seq

	finish := func() {
		cancel()
		s.mu.Lock()
		defer s.mu.Unlock()
		o.inFlight--
		if o.seq == seq {
			o.cancel = nil
		}
	}
	return callCtx, seq, finish, nil
}

// settle applies status and mutate atomically if seq is still current.
func (s *Session) settle(op Operation, seq uint64, status models.OperationStatus, mutate func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.ops[op]
	if o.seq != seq {
		return false
	}
	if mutate != nil {
		mutate()
	}
	o.status = status
	return true
}

func idleStatus() models.OperationStatus {
	return models.OperationStatus{Phase: models.PhaseIdle}
}

func succeeded(kind models.ErrorKind, message string) models.OperationStatus {
	return models.OperationStatus{Phase: models.PhaseSucceeded, Kind: kind, Message: message}
}

func failed(kind models.ErrorKind, message string) models.OperationStatus {
	return models.OperationStatus{Phase: models.PhaseFailed, Kind: kind, Message: message}
}
