package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsHealthCheckLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health check request", msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{name: "api request", msg: "http request", args: []any{"path", "/v1/venues"}, want: false},
		{name: "other message", msg: "seed job failed", args: []any{"path", "/healthz"}, want: false},
		{name: "no path", msg: "http request", args: []any{"status", 200}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isHealthCheckLog(tc.msg, tc.args); got != tc.want {
				t.Fatalf("isHealthCheckLog = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"session_id", "pk-downtown-soccer", "spots_left", 2, 42, "x", "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "session_id" || attrs[0].Value.AsString() != "pk-downtown-soccer" {
		t.Fatalf("unexpected session_id attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "spots_left" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected spots_left attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "arg_2" || attrs[2].Value.AsString() != "x" {
		t.Fatalf("expected positional key for non-string key, got %+v", attrs[2])
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty dangling attribute, got %+v", attrs[3])
	}
}

func TestLogValue(t *testing.T) {
	if v := logValue(errors.New("session is full"), 0); v.AsString() != "session is full" {
		t.Fatalf("unexpected error value %q", v.AsString())
	}
	if v := logValue(1500*time.Millisecond, 0); v.AsString() != "1.5s" {
		t.Fatalf("unexpected duration value %q", v.AsString())
	}
	if v := logValue(uint16(7), 0); v.Kind() != otellog.KindInt64 || v.AsInt64() != 7 {
		t.Fatalf("unexpected uint value %+v", v)
	}

	m := logValue(map[string]any{"wins": 4, "members": []string{"u1", "u2"}}, 0)
	if m.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", m.Kind())
	}
	items := m.AsMap()
	if len(items) != 2 || items[0].Key != "members" || items[1].Key != "wins" {
		t.Fatalf("expected sorted map keys, got %+v", items)
	}
	if items[0].Value.Kind() != otellog.KindSlice || len(items[0].Value.AsSlice()) != 2 {
		t.Fatalf("expected members slice, got %+v", items[0].Value)
	}

	var nilPtr *int
	if v := logValue(nilPtr, 0); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", v.Kind())
	}
}

func TestSeverityOf(t *testing.T) {
	tests := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel: otellog.SeverityDebug,
		zapcore.InfoLevel:  otellog.SeverityInfo,
		zapcore.WarnLevel:  otellog.SeverityWarn,
		zapcore.ErrorLevel: otellog.SeverityError,
		zapcore.PanicLevel: otellog.SeverityFatal,
	}
	for level, want := range tests {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s) = %v, want %v", level, got, want)
		}
	}
}
