package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{Level: slog.LevelDebug, Component: component, Output: buf})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_ComponentAppearsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, ComponentApp).WithComponent(ComponentStorage)

	logger.Info("Account created", FieldAccountID, 7)

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=storage") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "account_id=7") {
		t.Fatalf("missing field in %q", out)
	}
	if logger.Component() != ComponentStorage {
		t.Fatalf("Component() = %q", logger.Component())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level filtering failed: %q", buf.String())
	}
}

func TestLogFields_WithLedgerChange(t *testing.T) {
	tests := []struct {
		entity string
		key    string
	}{
		{"account", FieldAccountID},
		{"outcome", FieldOutcomeID},
		{"asset", FieldAssetID},
	}
	for _, tt := range tests {
		f := NewFields().WithLedgerChange(tt.entity, "created", 3)
		if f[tt.key] != int64(3) || f[FieldEntity] != tt.entity || f[FieldAction] != "created" {
			t.Errorf("WithLedgerChange(%s) = %v", tt.entity, f)
		}
	}

	f := NewFields().WithError(nil).WithAmount("12.50", "")
	if _, ok := f[FieldError]; ok {
		t.Error("nil error should not add a field")
	}
	if _, ok := f[FieldCurrency]; ok {
		t.Error("empty currency should not add a field")
	}
	if len(f.ToSlice()) != 2 {
		t.Errorf("ToSlice() = %v", f.ToSlice())
	}
}

func TestMiddleware_FromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, ComponentHTTP)

	var got *Logger
	handler := Middleware(logger)(
		RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = FromContext(r.Context())
				got.Info("Handling request")
			})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	if got == nil || got.Component() != ComponentHTTP {
		t.Fatalf("logger not propagated: %+v", got)
	}
	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("request id missing from %q", buf.String())
	}
}

func TestComponentMiddleware(t *testing.T) {
	var buf bytes.Buffer
	handler := Middleware(newBufferLogger(&buf, ComponentApp))(
		ComponentMiddleware(ComponentHTTP)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				FromContext(r.Context()).Info("Handling request")
			})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	if !strings.Contains(buf.String(), "component=http") || strings.Contains(buf.String(), "component=app") {
		t.Fatalf("component not replaced: %q", buf.String())
	}
}

func TestStructuredLogger_HTTP(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, ComponentApp)).WithRequestID("req-9")
	r := httptest.NewRequest(http.MethodDelete, "/api/outcomes/3", nil)

	sl.LogHTTPStart(context.Background(), r, "10.1.1.1")
	sl.LogHTTPEnd(context.Background(), r, http.StatusInternalServerError, 12, "10.1.1.1")

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "level=ERROR", "request_id=req-9", "method=DELETE", "status_code=500", "duration_ms=12", "success=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestFromContext_Default(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("unexpected default logger %+v", l)
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, ComponentApp))

	sl.LogLedgerChange(context.Background(), "outcome", "deleted", 4)
	sl.LogError(context.Background(), "Export failed", errors.New("quota"), ComponentSheets, OpExport, nil)

	out := buf.String()
	for _, want := range []string{"component=ledger", "outcome_id=4", "component=sheets", "error=quota", "operation=export"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
