package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/config"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/dto"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/middleware"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

const tokenTTL = 12 * time.Hour

// AuthHandler signs in the single admin account configured in env.
type AuthHandler struct {
	config *config.Config
	now    func() time.Time
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg, now: time.Now}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if h.config.AdminEmail == "" || h.config.AdminPasswordHash == "" {
		httperr.Unauthorized(c, "admin_login_disabled", nil)
		return
	}

	email := validators.NormalizeEmail(req.Email)
	want := validators.NormalizeEmail(h.config.AdminEmail)

	// Always run bcrypt so a wrong email costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(req.Password))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(want)) == 1
	if pwErr != nil || !emailOK {
		httperr.Unauthorized(c, "invalid_credentials", nil)
		return
	}

	token, expires, err := h.generateToken(email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expires,
		"user": gin.H{
			"email": email,
			"role":  middleware.RoleAdmin,
		},
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(email string) (string, time.Time, error) {
	now := h.now()
	expires := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"sub":  strings.ToLower(email),
		"role": middleware.RoleAdmin,
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, expires, err
}
