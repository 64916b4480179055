package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ospl-go/internal/ospl"
)

// osplHandler is a slog.Handler that writes one line per record:
//
//	<timestamp>\t<level>\t<opID>\t<message>\t<key=value ...>
//
// Every record goes to w. Records at consoleLevel or above are also copied
// to console when it is set.
//
// An error attribute holding an *ospl.StepError is expanded into op, outcome
// and id fields so a partially applied call can be read back from the log.
type osplHandler struct {
	w            io.Writer
	console      io.Writer
	consoleLevel slog.Level
	opID         string
	attrs        []slog.Attr
}

func (h *osplHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *osplHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\t%s\t%s\t%s", r.Time.UTC().Format("2006-01-02T15:04:05Z"), r.Level, h.opID, flatten(r.Message))

	for _, a := range h.attrs {
		writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&buf, a)
		return true
	})
	buf.WriteByte('\n')

	if _, err := h.w.Write(buf.Bytes()); err != nil {
		return err
	}
	if h.console != nil && r.Level >= h.consoleLevel {
		if _, err := h.console.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (h *osplHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *osplHandler) WithGroup(string) slog.Handler { return h }

// writeAttr appends "\tkey=value". Errors are expanded:
//
//	err=<cause>                                  plain error
//	kind=<kind>\terr=<cause>                     *ospl.Error in the chain
//	op=<op>\toutcome=<outcome>\tid=<id>\t...     *ospl.StepError in the chain
func writeAttr(buf *bytes.Buffer, a slog.Attr) {
	v := a.Value.Resolve()
	err, ok := v.Any().(error)
	if v.Kind() != slog.KindAny || !ok || err == nil {
		fmt.Fprintf(buf, "\t%s=%s", a.Key, flatten(v.String()))
		return
	}

	cause := err
	var se *ospl.StepError
	if errors.As(err, &se) {
		fmt.Fprintf(buf, "\top=%s\toutcome=%s", flatten(se.Op), strings.ReplaceAll(se.Outcome.String(), " ", "_"))
		if se.ID != 0 {
			fmt.Fprintf(buf, "\tid=%d", se.ID)
		}
		cause = se.Err
	}
	if kind := ospl.KindOf(err); kind != ospl.KindOther {
		fmt.Fprintf(buf, "\tkind=%s", strings.ReplaceAll(kind.String(), " ", "_"))
	}
	fmt.Fprintf(buf, "\t%s=%s", a.Key, flatten(cause.Error()))
}

// flatten keeps a value on one line and out of the field separators.
// errors.Join output in particular spans several lines.
func flatten(s string) string {
	return strings.NewReplacer("\n", "; ", "\t", " ").Replace(s)
}

// newLogger creates a structured logger writing every record to
// logDir/ospl.log and warnings and errors to stderr as well.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logDir string, opID string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "ospl.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := &osplHandler{w: f, console: os.Stderr, consoleLevel: slog.LevelWarn, opID: opID}
	return slog.New(handler), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the ospl.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
