package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"gigmarket/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// IdentityClaims are the identity provider claims the service reads.
type IdentityClaims struct {
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	Nickname          string `json:"nickname,omitempty"`
	Picture           string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator validates bearer tokens and puts the caller's identity on the request context.
type Authenticator struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

// NewAuthenticator builds an authenticator. issuer is checked when non-empty.
func NewAuthenticator(keyfunc jwt.Keyfunc, issuer string, methods ...string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithLeeway(30 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Authenticator{parser: jwt.NewParser(opts...), keyfunc: keyfunc}
}

// NewHMACKeyfunc verifies tokens signed with a shared secret.
func NewHMACKeyfunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}
}

// NewJWKS fetches the identity provider's key set and keeps it refreshed in the background.
// Call EndBackground on the result at shutdown.
func NewJWKS(url string, refresh time.Duration) (*keyfunc.JWKS, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   refresh,
		RefreshRateLimit:  time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("WARN: JWKS refresh failed: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", url, err)
	}
	return jwks, nil
}

// Parse validates a raw token and returns the identity it asserts.
func (a *Authenticator) Parse(raw string) (*common.Identity, error) {
	claims := &IdentityClaims{}
	token, err := a.parser.ParseWithClaims(raw, claims, a.keyfunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token not valid")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	username := claims.PreferredUsername
	if username == "" {
		username = claims.Nickname
	}
	return &common.Identity{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Username: username,
		Picture:  claims.Picture,
	}, nil
}

func (a *Authenticator) config() echojwt.Config {
	return echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return a.Parse(auth)
		},
		SuccessHandler: func(c echo.Context) {
			if identity, ok := c.Get("user").(*common.Identity); ok {
				c.SetRequest(c.Request().WithContext(common.WithIdentity(c.Request().Context(), identity)))
			}
		},
	}
}

// RequireIdentity rejects requests without a valid bearer token.
func (a *Authenticator) RequireIdentity() echo.MiddlewareFunc {
	cfg := a.config()
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
	}
	return echojwt.WithConfig(cfg)
}

// OptionalIdentity lets anonymous requests through but still rejects a malformed or expired token.
func (a *Authenticator) OptionalIdentity() echo.MiddlewareFunc {
	cfg := a.config()
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		var missing *echojwt.TokenExtractionError
		if errors.As(err, &missing) {
			return nil
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
	}
	return echojwt.WithConfig(cfg)
}

// RequireSubject allows only the listed subjects. An empty list allows every authenticated caller.
func RequireSubject(subjects []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		allowed[s] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := common.IdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			if len(allowed) > 0 {
				if _, ok := allowed[identity.Subject]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "Not allowed")
				}
			}
			return next(c)
		}
	}
}
