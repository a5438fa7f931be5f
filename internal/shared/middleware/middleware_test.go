package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"matchday/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	validateFn func(tokenString string) (*auth.JWTClaims, error)
}

func (s *stubValidator) ValidateToken(tokenString string) (*auth.JWTClaims, error) {
	return s.validateFn(tokenString)
}

func accessClaims(userID uuid.UUID, isOrganizer bool) *auth.JWTClaims {
	return &auth.JWTClaims{
		UserID:      userID.String(),
		Email:       "alex@matchday.dev",
		IsOrganizer: isOrganizer,
		Type:        "access",
	}
}

func newTestRouter(validator TokenValidator, extra ...gin.HandlerFunc) (*gin.Engine, *auth.Caller) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var captured auth.Caller
	handlers := append([]gin.HandlerFunc{JWTAuth(validator)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if ok {
			captured = caller
		}
		c.Status(http.StatusOK)
	})

	engine.GET("/protected", handlers...)
	return engine, &captured
}

func TestJWTAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		claims     *auth.JWTClaims
		claimsErr  error
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			claimsErr:  auth.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "refresh token rejected on api routes",
			header: "Bearer refresh-token",
			claims: &auth.JWTClaims{
				UserID: userID.String(),
				Type:   "refresh",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "non-uuid subject rejected",
			header: "Bearer odd-subject",
			claims: &auth.JWTClaims{
				UserID: "42",
				Type:   "access",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid access token",
			header:     "Bearer good",
			claims:     accessClaims(userID, false),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &stubValidator{
				validateFn: func(tokenString string) (*auth.JWTClaims, error) {
					if tt.claimsErr != nil {
						return nil, tt.claimsErr
					}
					return tt.claims, nil
				},
			}

			engine, captured := newTestRouter(validator)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, captured.UserID)
			}
		})
	}
}

func TestRequireOrganizer(t *testing.T) {
	tests := []struct {
		name        string
		isOrganizer bool
		wantStatus  int
	}{
		{"organizer allowed", true, http.StatusOK},
		{"regular user forbidden", false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			validator := &stubValidator{
				validateFn: func(tokenString string) (*auth.JWTClaims, error) {
					return accessClaims(userID, tt.isOrganizer), nil
				},
			}

			engine, _ := newTestRouter(validator, RequireOrganizer())

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetCaller_MissingContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetCaller(c)
	require.False(t, ok)
}
