package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"expensetracker/internal/currency"
	"expensetracker/internal/logger"
	"expensetracker/internal/router"
	"expensetracker/internal/services"
	"expensetracker/internal/session"
	"expensetracker/internal/testutil"
	"expensetracker/internal/validator"
)

const (
	testSecret = "integration-secret"
	testAPIKey = "integration-webhook-key"
)

// fixedNow sits inside the June 23 - July 23 billing cycle.
var fixedNow = time.Date(2024, 6, 25, 9, 30, 0, 0, time.UTC)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Router   *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	sessions := session.NewManager(services.NewDataService(db))
	engine := router.New(router.Deps{
		Sessions:      sessions,
		Converter:     currency.Default(),
		Clock:         func() time.Time { return fixedNow },
		JWTSecret:     testSecret,
		WebhookAPIKey: testAPIKey,
	})

	return &testApp{DB: db, Sessions: sessions, Router: engine}
}

// token signs an access token for userID.
func (app *testApp) token(t *testing.T, userID string) string {
	t.Helper()
	return testutil.NewTestToken(t, testSecret, userID)
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// webhook posts a session-change event as the auth backend would.
func (app *testApp) webhook(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/webhooks/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// field descends into nested JSON objects.
func field(t *testing.T, m map[string]interface{}, path ...string) interface{} {
	t.Helper()
	var cur interface{} = m
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object at %q, got %T", key, cur)
		}
		cur = obj[key]
	}
	return cur
}
