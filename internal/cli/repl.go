package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/session"
)

const helpText = `Commands:
  /upload <path>   load a resume from a .txt, .pdf or .docx file
  /resume <text>   set the resume text directly
  /job <text>      set the job description
  /jobfile <path>  read the job description from a text file
  /analyze         score the resume against the job description
  /status          show buffers, last result and chat history
  /reset           clear everything and start over
  /help            show this help
  /quit            exit
Any other line is sent to the chatbot.`

var extensionTypes = map[string]string{
	".txt":  session.ContentTypeText,
	".pdf":  session.ContentTypePDF,
	".docx": session.ContentTypeDocx,
}

// ContentTypeFor infers the content type of a selected file from its
// extension, falling back to sniffing the data.
func ContentTypeFor(name string, data []byte) string {
	if contentType, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return contentType
	}
	return http.DetectContentType(data)
}

// REPL drives one analysis session from a line-oriented terminal.
type REPL struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
}

func NewREPL(s *session.Session, in io.Reader, out io.Writer) *REPL {
	return &REPL{session: s, in: in, out: out}
}

// Run reads commands until /quit, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprintln(r.out, "Resume Analyzer. Type /help for commands.")
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		if r.Handle(ctx, scanner.Text()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Handle executes one input line and reports whether the user asked to quit.
func (r *REPL) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		r.chat(ctx, line)
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(r.out, helpText)
	case "/upload":
		r.upload(ctx, arg)
	case "/resume":
		r.session.SetResumeText(arg)
		fmt.Fprintf(r.out, "✅ Resume text set (%d characters)\n", len(arg))
	case "/job":
		r.session.SetJobDescription(arg)
		fmt.Fprintf(r.out, "✅ Job description set (%d characters)\n", len(arg))
	case "/jobfile":
		r.jobFile(arg)
	case "/analyze":
		r.analyze(ctx)
	case "/status":
		r.status()
	case "/reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "🔄 Session cleared")
	default:
		fmt.Fprintf(r.out, "Unknown command %s. Type /help for commands.\n", command)
	}
	return false
}

func (r *REPL) upload(ctx context.Context, path string) {
	if path == "" {
		fmt.Fprintln(r.out, "Usage: /upload <path>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.out, "❌ Failed to open %s: %v\n", path, err)
		return
	}

	err = r.session.LoadResumeFile(ctx, filepath.Base(path), ContentTypeFor(path, data), bytes.NewReader(data))
	if errors.Is(err, session.ErrSuperseded) {
		return
	}

	state := r.session.Snapshot()
	RenderStatus(r.out, "Upload", state.Upload)
	if err == nil {
		fmt.Fprintf(r.out, "📄 Resume text: %d characters\n", len(state.ResumeText))
	}
}

func (r *REPL) jobFile(path string) {
	if path == "" {
		fmt.Fprintln(r.out, "Usage: /jobfile <path>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.out, "❌ Failed to open %s: %v\n", path, err)
		return
	}
	r.session.SetJobDescription(string(data))
	fmt.Fprintf(r.out, "✅ Job description set (%d characters)\n", len(data))
}

func (r *REPL) analyze(ctx context.Context) {
	fmt.Fprintln(r.out, "⏳ Analyzing...")
	err := r.session.Analyze(ctx)
	switch {
	case errors.Is(err, session.ErrEmptyResume):
		fmt.Fprintln(r.out, "Please provide your resume text before analyzing.")
		return
	case errors.Is(err, session.ErrBusy):
		fmt.Fprintln(r.out, "An analysis is already running.")
		return
	case errors.Is(err, session.ErrSuperseded):
		return
	}

	state := r.session.Snapshot()
	if state.Analysis.Failed() {
		RenderStatus(r.out, "Analysis", state.Analysis)
		return
	}
	RenderResult(r.out, state.Result)
}

func (r *REPL) chat(ctx context.Context, text string) {
	err := r.session.SendChat(ctx, text)
	switch {
	case errors.Is(err, session.ErrBusy):
		fmt.Fprintln(r.out, "Still waiting for the previous reply.")
		return
	case errors.Is(err, session.ErrEmptyMessage), errors.Is(err, session.ErrSuperseded):
		return
	}

	state := r.session.Snapshot()
	if state.Chat.Failed() {
		RenderStatus(r.out, "Chat", state.Chat)
		return
	}
	if n := len(state.History); n > 0 {
		fmt.Fprintf(r.out, "AI: %s\n", state.History[n-1].Text)
	}
}

func (r *REPL) status() {
	state := r.session.Snapshot()

	fmt.Fprintf(r.out, "Session %s\n", state.ID)
	fmt.Fprintf(r.out, "Resume: %d characters\n", len(state.ResumeText))
	fmt.Fprintf(r.out, "Job description: %d characters\n", len(state.JobDescription))
	RenderStatus(r.out, "Upload", state.Upload)
	RenderStatus(r.out, "Analysis", state.Analysis)
	RenderStatus(r.out, "Chat", state.Chat)

	fmt.Fprintln(r.out)
	RenderResult(r.out, state.Result)
	fmt.Fprintln(r.out)
	RenderHistory(r.out, state.History)
}
