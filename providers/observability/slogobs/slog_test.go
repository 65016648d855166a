package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/agentgraph/providers/observability"
)

func newBufferedObserver(level slog.Level) (*Observer, *bytes.Buffer) {
	var buffer bytes.Buffer
	observer := New(
		WithFormat(FormatText),
		WithLevel(level),
		WithOutput(&buffer),
	)
	return observer, &buffer
}

func TestLoggingLevels(t *testing.T) {
	observer, buffer := newBufferedObserver(slog.LevelInfo)
	ctx := context.Background()

	observer.Debug(ctx, "below threshold")
	observer.Info(ctx, "visible info", observability.String("key", "value"))
	observer.Error(ctx, "visible error")

	output := buffer.String()
	if strings.Contains(output, "below threshold") {
		t.Error("debug message leaked through INFO level")
	}
	if !strings.Contains(output, "visible info") || !strings.Contains(output, "key=value") {
		t.Errorf("info message missing: %s", output)
	}
	if !strings.Contains(output, "visible error") {
		t.Errorf("error message missing: %s", output)
	}
}

func TestSpanLifecycle(t *testing.T) {
	observer, buffer := newBufferedObserver(slog.LevelDebug)
	ctx := context.Background()

	spanCtx, span := observer.StartSpan(ctx, "unit.test", observability.String("phase", "start"))
	if spanCtx == nil || span == nil {
		t.Fatal("StartSpan returned nil")
	}

	span.AddEvent("checkpoint", observability.Int("n", 1))
	span.SetAttributes(observability.Bool("flag", true))
	span.SetStatus(observability.StatusOK, "all good")
	span.End()

	output := buffer.String()
	for _, want := range []string{"span.start", "checkpoint", "span.end", "status=ok"} {
		if !strings.Contains(output, want) {
			t.Errorf("span output missing %q: %s", want, output)
		}
	}
}

func TestSpanRecordError(t *testing.T) {
	observer, buffer := newBufferedObserver(slog.LevelDebug)

	_, span := observer.StartSpan(context.Background(), "unit.test")
	span.RecordError(errors.New("something broke"))
	span.End()

	if !strings.Contains(buffer.String(), "something broke") {
		t.Errorf("recorded error missing: %s", buffer.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buffer bytes.Buffer
	observer := New(WithFormat(FormatJSON), WithLevel(slog.LevelInfo), WithOutput(&buffer))

	observer.Info(context.Background(), "structured")

	if !strings.HasPrefix(strings.TrimSpace(buffer.String()), "{") {
		t.Errorf("expected JSON output, got: %s", buffer.String())
	}
}

func TestGetFormatFromEnv(t *testing.T) {
	t.Setenv("AGENTGRAPH_LOG_FORMAT", "json")
	if GetFormatFromEnv() != FormatJSON {
		t.Error("expected json format")
	}

	t.Setenv("AGENTGRAPH_LOG_FORMAT", "nonsense")
	if GetFormatFromEnv() != FormatText {
		t.Error("expected text fallback")
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"trace", slog.LevelDebug - 4},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, test := range tests {
		t.Setenv("AGENTGRAPH_LOG_LEVEL", test.value)
		if got := GetLogLevelFromEnv(); got != test.want {
			t.Errorf("level %q: expected %v, got %v", test.value, test.want, got)
		}
	}
}
