package pixproc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
)

// captureHandler is a slog.Handler that keeps every record it sees.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h *captureHandler) WithGroup(string) slog.Handler             { return h }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r.Clone())
	h.mu.Unlock()
	return nil
}

// find returns the attributes of every record with the given level and
// message.
func (h *captureHandler) find(level slog.Level, msg string) []map[string]slog.Value {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []map[string]slog.Value
	for _, r := range h.records {
		if r.Level != level || r.Message != msg {
			continue
		}
		attrs := make(map[string]slog.Value)
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value
			return true
		})
		out = append(out, attrs)
	}
	return out
}

// captureLogs installs a capturing logger for the duration of the test.
func captureLogs(t *testing.T) *captureHandler {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	h := &captureHandler{}
	SetLogger(slog.New(h))
	return h
}

// =============================================================================
// Logger configuration
// =============================================================================

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.New(&captureHandler{}))
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) stored a nil logger")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

// =============================================================================
// Engine records
// =============================================================================

func TestProcess_LogsDispatch(t *testing.T) {
	h := captureLogs(t)

	pm := NewPixmap(5, 4)
	e := newTestEngine(t, 2)
	r := NewRect(1, 1, 3, 10)
	if err := e.Process(context.Background(), pm, pm, r, r, 0, 4, copyPixel, nil); err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	recs := h.find(slog.LevelDebug, "pixproc: process")
	if len(recs) != 1 {
		t.Fatalf("got %d dispatch records, want 1", len(recs))
	}
	attrs := recs[0]

	if got := attrs["rows"].Any(); got != [2]int{1, 4} {
		t.Errorf("rows = %v, want [1 4]", got)
	}
	if got := attrs["cols"].Any(); got != [2]int{1, 4} {
		t.Errorf("cols = %v, want [1 4]", got)
	}
	if got := attrs["workers"].Int64(); got != 2 {
		t.Errorf("workers = %d, want 2", got)
	}
	if _, ok := attrs["queued"]; !ok {
		t.Error("dispatch record has no queued attribute")
	}
	if len(h.find(slog.LevelWarn, "pixproc: release accessor")) != 0 {
		t.Error("clean run logged a release warning")
	}
}

func TestProcess_LogsReleaseError(t *testing.T) {
	errClose := errors.New("flush failed")

	for _, name := range []string{"source", "target"} {
		t.Run(name, func(t *testing.T) {
			h := captureLogs(t)

			var src, dst Buffer = NewPixmap(3, 3), NewPixmap(3, 3)
			failing := closeErrBuffer{Pixmap: NewPixmap(3, 3), err: errClose}
			if name == "source" {
				src = failing
			} else {
				dst = failing
			}

			e := newTestEngine(t, 1)
			r := NewRect(0, 0, 3, 3)
			err := e.Process(context.Background(), dst, src, r, r, 0, 3, copyPixel, nil)
			if !errors.Is(err, errClose) {
				t.Fatalf("Process() error = %v, want %v", err, errClose)
			}

			recs := h.find(slog.LevelWarn, "pixproc: release accessor")
			if len(recs) != 1 {
				t.Fatalf("got %d release warnings, want 1", len(recs))
			}
			if got := recs[0]["buffer"].String(); got != name {
				t.Errorf("buffer = %q, want %q", got, name)
			}
			if got, ok := recs[0]["err"].Any().(error); !ok || !errors.Is(got, errClose) {
				t.Errorf("err = %v, want %v", recs[0]["err"].Any(), errClose)
			}
		})
	}
}

func TestRun_LogsCompletion(t *testing.T) {
	h := captureLogs(t)

	pm := NewPixmap(2, 5)
	e := newTestEngine(t, 2)
	if err := e.Run(context.Background(), FilterFunc(copyPixel), pm, pm, pm.Rect(), pm.Rect(), WithBandHeight(2)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	recs := h.find(slog.LevelDebug, "pixproc: run complete")
	if len(recs) != 1 {
		t.Fatalf("got %d completion records, want 1", len(recs))
	}
	if rows, total := recs[0]["rows"].Int64(), recs[0]["total"].Int64(); rows != 5 || total != 5 {
		t.Errorf("rows/total = %d/%d, want 5/5", rows, total)
	}
	if n := len(h.find(slog.LevelDebug, "pixproc: process")); n != 3 {
		t.Errorf("dispatch records = %d, want one per band (3)", n)
	}
}
