package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

// ======================================================
// LOGIN
// ======================================================

func TestLogin(t *testing.T) {
	s := newServer(t)

	t.Run("wrong password", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email": adminEmail, "password": "nope",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "invalid_credentials", res.Body["error"])
	})

	t.Run("wrong email", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "someone@example.com", "password": adminPassword,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, "invalid_request", res.Body["error"])
	})

	t.Run("success", func(t *testing.T) {
		res := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "Trainer@Example.com", "password": adminPassword,
		}, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body)

		raw, _ := res.Body["token"].(string)
		require.NotEmpty(t, raw)

		tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
			return []byte("test-jwt-secret"), nil
		})
		require.NoError(t, err)

		claims := tok.Claims.(jwt.MapClaims)
		assert.Equal(t, adminEmail, claims["sub"])
		assert.Equal(t, "admin", claims["role"])

		user := res.Body["user"].(map[string]any)
		assert.Equal(t, adminEmail, user["email"])
	})
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	res := s.do(t, http.MethodGet, "/api/admin/clients", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "missing_authorization_header", res.Body["error"])

	res = s.do(t, http.MethodGet, "/api/admin/clients", nil, map[string]string{
		"Authorization": "Bearer " + signed(t, jwt.MapClaims{
			"sub":  adminEmail,
			"role": "admin",
			"exp":  time.Now().Add(-time.Minute).Unix(),
		}),
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid_token", res.Body["error"])
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	out, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret"))
	require.NoError(t, err)
	return out
}

// ======================================================
// MATCH SESSIONS
// ======================================================

func TestMatchSessions(t *testing.T) {
	s := newServer(t)
	c := s.store.AddClient(models.Client{
		OwnerFirstName: "Jane",
		OwnerLastName:  "Doe",
		DogName:        "Rex",
		ContactEmail:   ptr("jane@example.com"),
	})
	s.store.AddSession(models.Session{Email: "JANE@example.com", BookingTime: now()})
	s.store.AddSession(models.Session{Email: "", BookingTime: now()})

	t.Run("empty body previews", func(t *testing.T) {
		res := s.admin(t, http.MethodPost, "/api/admin/match-sessions", nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body)

		d := data(t, res)
		assert.Equal(t, "preview", d["mode"])
		assert.Equal(t, true, d["dryRun"])
		assert.Equal(t, 1.0, d["matchedCount"])
		assert.Equal(t, 1.0, d["unmatchedCount"])
		assert.Equal(t, 0, s.store.Links)
	})

	t.Run("apply links", func(t *testing.T) {
		res := s.admin(t, http.MethodPost, "/api/admin/match-sessions", map[string]any{"dryRun": false})
		require.Equal(t, http.StatusOK, res.Code, res.Body)

		d := data(t, res)
		assert.Equal(t, "applied", d["mode"])
		results := d["updateResults"].(map[string]any)
		assert.Equal(t, 1.0, results["success"])
		assert.Equal(t, 0.0, results["errors"])

		var linked int
		for _, ss := range s.store.Sessions() {
			if ss.ClientID != nil && *ss.ClientID == c.ID {
				linked++
			}
		}
		assert.Equal(t, 1, linked)
	})

	t.Run("second apply is a no-op", func(t *testing.T) {
		links := s.store.Links
		res := s.admin(t, http.MethodPost, "/api/admin/match-sessions", map[string]any{"dryRun": false})
		require.Equal(t, http.StatusOK, res.Code, res.Body)
		assert.Equal(t, 0.0, data(t, res)["needsUpdateCount"])
		assert.Equal(t, links, s.store.Links)
	})

	t.Run("inspect", func(t *testing.T) {
		res := s.admin(t, http.MethodGet, "/api/admin/match-sessions", nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body)
		assert.Equal(t, true, res.Body["success"])
	})
}

// ======================================================
// ANALYTICS
// ======================================================

func TestAnalytics_Validation(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		query string
		code  string
	}{
		{"?type=weekly", "invalid_type"},
		{"?year=1999", "invalid_year"},
		{"?year=abc", "invalid_year"},
		{"?type=members&year=2025", "invalid_month"},
		{"?type=members&year=2025&month=13", "invalid_month"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := s.admin(t, http.MethodGet, "/api/memberships/analytics"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.Equal(t, tt.code, res.Body["error"])
		})
	}
}

func TestAnalytics_Monthly(t *testing.T) {
	s := newServer(t)
	s.store.AddMembership(models.Membership{
		Email: "jane@example.com", Client: "Jane", Amount: 25,
		Date: time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
	})

	res := s.admin(t, http.MethodGet, "/api/memberships/analytics", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	assert.Equal(t, "monthly", res.Body["type"])
	assert.Equal(t, 2025.0, res.Body["year"])

	months, ok := res.Body["data"].([]any)
	require.True(t, ok)
	require.Len(t, months, 12)

	feb := months[1].(map[string]any)
	assert.Equal(t, 1.0, feb["totalMembers"])
	assert.Equal(t, 25.0, feb["monthlyRecurringRevenue"])
}

func TestAnalytics_Members(t *testing.T) {
	s := newServer(t)
	s.store.AddClient(models.Client{OwnerFirstName: "Jane", ContactEmail: ptr("jane@example.com")})
	s.store.AddMembership(models.Membership{
		Email: "jane@example.com", Client: "Jane", Amount: 25,
		Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	})

	res := s.admin(t, http.MethodGet, "/api/memberships/analytics?type=members&year=2025&month=3", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body)

	d := data(t, res)
	assert.Equal(t, 1.0, d["total"])
	assert.Equal(t, 25.0, d["revenue"])
	assert.Equal(t, 0.0, d["unlinked"])
}
