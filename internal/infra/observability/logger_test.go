package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerMiddlewareLevels(t *testing.T) {
	cases := []struct {
		status  int
		level   zapcore.Level
		message string
	}{
		{http.StatusOK, zapcore.InfoLevel, "request served"},
		{http.StatusNotFound, zapcore.WarnLevel, "request rejected"},
		{http.StatusInternalServerError, zapcore.ErrorLevel, "request failed"},
	}

	for _, tc := range cases {
		core, logs := observer.New(zapcore.InfoLevel)
		h := ZapLoggerMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/transactions", nil))

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("status %d: expected 1 log entry, got %d", tc.status, len(entries))
		}
		if entries[0].Level != tc.level {
			t.Errorf("status %d logged at %v, want %v", tc.status, entries[0].Level, tc.level)
		}
		if entries[0].Message != tc.message {
			t.Errorf("status %d message = %q, want %q", tc.status, entries[0].Message, tc.message)
		}
	}
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewLogger("nonsense")
	defer func() { _ = logger.Sync() }()

	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should stay disabled for unknown level names")
	}
}
