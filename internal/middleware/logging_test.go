package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	previous := logger.Get()
	logger.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logger.Set(previous) })
	return logs
}

func TestRequestLogging(t *testing.T) {
	t.Run("assigns_request_id_and_logs_outcome", func(t *testing.T) {
		logs := observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/items/:id", func(c *gin.Context) {
			c.Set(UserIDKey, "user-1")
			c.Status(http.StatusNotFound)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7", http.NoBody))

		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatal("expected X-Request-ID header")
		}
		entries := logs.FilterMessage("request").All()
		if len(entries) != 1 {
			t.Fatalf("expected 1 request log, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Level != zap.WarnLevel {
			t.Errorf("expected warn level for 404, got %s", entry.Level)
		}
		fields := entry.ContextMap()
		if fields["path"] != "/items/:id" || fields["user_id"] != "user-1" {
			t.Errorf("unexpected fields %v", fields)
		}
	})

	t.Run("reuses_valid_incoming_request_id", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		const id = "0190a000-0000-7000-8000-000000000001"
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") != id {
			t.Errorf("expected %s, got %s", id, rec.Header().Get("X-Request-ID"))
		}
	})

	t.Run("replaces_malformed_request_id", func(t *testing.T) {
		observeLogs(t)
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("X-Request-ID", "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") == "<script>" {
			t.Error("expected malformed id to be replaced")
		}
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "app_error", err: apperrors.ErrTransactionNotFound, wantCode: http.StatusNotFound, wantErr: "TRANSACTION_NOT_FOUND"},
		{name: "wrapped_app_error", err: apperrors.Wrap(apperrors.ErrRemoteUnavailable, errors.New("dial tcp")), wantCode: http.StatusBadGateway, wantErr: "REMOTE_UNAVAILABLE"},
		{name: "unexpected_error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observeLogs(t)
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			errObj := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantErr {
				t.Errorf("expected %s, got %v", tt.wantErr, errObj["code"])
			}
		})
	}
}
