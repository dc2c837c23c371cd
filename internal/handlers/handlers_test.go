package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/config"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/handlers"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/infra/memstore"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/lock"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/middleware"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/analytics"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/ingest"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/intake"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/reconcile"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

const (
	adminEmail    = "trainer@example.com"
	adminPassword = "s3cret-pass"
	webhookSecret = "hook-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterBindings(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func now() time.Time {
	return time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
}

type server struct {
	router *gin.Engine
	store  *memstore.Store
	audit  *memstore.Recorder
}

// newServer mirrors routes.RegisterRoutes over the in-memory store.
func newServer(t *testing.T) *server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:         "test-jwt-secret",
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		WebhookSecret:     webhookSecret,
	}

	store := memstore.New()
	rec := &memstore.Recorder{}
	loc := time.UTC

	resolver := ingest.NewClientResolver(store, lock.NewLocalLocker(), now)
	payment := ingest.NewRecordPayment(resolver, store, store, rec, loc)

	webhook := handlers.NewWebhookHandler(
		payment,
		ingest.NewRecordOrder(payment),
		ingest.NewApplyMembershipStatus(resolver, store, store, rec, loc, now),
		ingest.NewCreateMemberClient(resolver, store, rec, loc, now),
		ingest.NewCancelMembership(resolver, store, rec),
	)
	auth := handlers.NewAuthHandler(cfg)
	admin := handlers.NewAdminHandler(reconcile.NewMatchSessions(store, store, rec))
	stats := handlers.NewAnalyticsHandler(analytics.NewMembershipAnalytics(store, store, domainClient.NewOverrideTable(), loc, now))
	clients := handlers.NewClientHandler(store, store, store, store, rec)
	forms := handlers.NewIntakeHandler(intake.NewSubmit(resolver, store, store, rec, now))

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/login", auth.Login)
	api.POST("/public/behavioural-brief", forms.BehaviouralBrief)
	api.POST("/public/behaviour-questionnaire", forms.BehaviourQuestionnaire)

	hooks := api.Group("/webhooks", middleware.WebhookSecret(cfg.WebhookSecret))
	hooks.POST("/payment", webhook.Payment)
	hooks.POST("/order", webhook.Order)
	hooks.POST("/membership", webhook.Membership)
	hooks.POST("/new-client", webhook.NewClient)
	hooks.POST("/cancel", webhook.Cancel)

	secured := api.Group("/", middleware.AuthMiddleware(cfg))
	secured.GET("/memberships/analytics", stats.Memberships)
	secured.GET("/admin/match-sessions", admin.InspectSessions)
	secured.POST("/admin/match-sessions", admin.MatchSessions)
	secured.GET("/admin/clients", clients.List)
	secured.GET("/admin/clients/match", clients.Match)
	secured.GET("/admin/clients/:id", clients.Get)
	secured.PATCH("/admin/clients/:id", clients.Update)
	secured.DELETE("/admin/clients/:id", clients.Delete)

	return &server{router: r, store: store, audit: rec}
}

type response struct {
	Code int
	Body map[string]any
}

func (s *server) do(t *testing.T, method, path string, body any, headers map[string]string) response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := response{Code: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out.Body), w.Body.String())
	}
	return out
}

func (s *server) webhook(t *testing.T, path string, body any) response {
	return s.do(t, http.MethodPost, "/api/webhooks"+path, body, map[string]string{
		middleware.WebhookSecretHeader: webhookSecret,
	})
}

func (s *server) token(t *testing.T) string {
	t.Helper()
	res := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": adminEmail, "password": adminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	return res.Body["token"].(string)
}

func (s *server) admin(t *testing.T, method, path string, body any) response {
	return s.do(t, method, path, body, map[string]string{
		"Authorization": "Bearer " + s.token(t),
	})
}

func data(t *testing.T, r response) map[string]any {
	t.Helper()
	d, ok := r.Body["data"].(map[string]any)
	require.True(t, ok, "missing data in %v", r.Body)
	return d
}
