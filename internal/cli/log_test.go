package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classlink/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Exported shapes.xmi")

	if !strings.Contains(buf.String(), "Exported shapes.xmi (") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestSetLogLevelRegistersHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)

	ctx := context.Background()
	observability.Pipeline().OnLoadComplete(ctx, "shapes.json", 3, 4, nil)
	observability.Pipeline().OnRenderComplete(ctx, "svg", 3, 1024, time.Millisecond, nil)
	observability.Pipeline().OnExportComplete(ctx, 3, 2, 1, time.Millisecond, errors.New("boom"))
	observability.Cache().OnCacheHit(ctx, "png")

	out := buf.String()
	for _, want := range []string{"shapes.json", "drawn=3", "export failed", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestSetLogLevelInfoKeepsHooksQuiet(t *testing.T) {
	t.Cleanup(observability.Reset)
	observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	c.SetLogLevel(LogInfo)

	observability.Cache().OnCacheMiss(context.Background(), "svg")
	if buf.Len() != 0 {
		t.Errorf("info level should not log cache events: %q", buf.String())
	}
}
