package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the admin session cookie
const SessionCookie = "tastytalk_admin"

// AdminClaims are the claims carried by the admin session token
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session cookies for the admin
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	enabled bool
	now     func() time.Time
}

// NewSessionManager creates a SessionManager. With enabled false every request is
// treated as logged in.
func NewSessionManager(secret string, ttl time.Duration, secure, enabled bool) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure, enabled: enabled, now: time.Now}
}

func (m *SessionManager) Enabled() bool {
	return m.enabled
}

// Issue signs a session for email and sets it as a cookie
func (m *SessionManager) Issue(c echo.Context, email string) error {
	now := m.now()
	claims := &AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie
func (m *SessionManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Verify parses and validates a session token
func (m *SessionManager) Verify(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// RequireSession redirects to the login page unless a valid session cookie is present.
func (m *SessionManager) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.enabled {
				return next(c)
			}
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			claims, err := m.Verify(cookie.Value)
			if err != nil {
				m.Clear(c)
				return c.Redirect(http.StatusFound, "/login")
			}

			// Store the admin email in the context for later use
			c.Set("adminEmail", claims.Email)
			return next(c)
		}
	}
}
