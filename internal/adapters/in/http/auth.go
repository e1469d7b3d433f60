package http

import (
	"errors"
	"net/http"
	"strings"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const identityKey = "identity"

var (
	errMissingToken   = errors.New("missing bearer token")
	errNoIdentity     = errors.New("request carries no identity")
	errMissingRegion  = errors.New("token carries no country")
	errUnexpectedAlgo = errors.New("unexpected signing method")
)

// Claims is the bearer token payload. The subject is the user id; country
// and region are accepted interchangeably.
type Claims struct {
	Role    string `json:"role"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	jwt.RegisteredClaims
}

func (c Claims) identity() (identity.Identity, error) {
	role, err := identity.ParseRole(c.Role)
	if err != nil {
		return identity.Identity{}, err
	}

	country := c.Country
	if country == "" {
		country = c.Region
	}
	if country == "" {
		return identity.Identity{}, errMissingRegion
	}

	region, err := kernel.ParseRegion(country)
	if err != nil {
		return identity.Identity{}, err
	}

	return identity.NewIdentity(c.Subject, role, region)
}

// JWTAuth verifies HMAC-signed bearer tokens and stores the caller's
// identity on the context. Requests the skipper accepts pass untouched.
func JWTAuth(secret []byte, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))

	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedAlgo
		}
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			raw, err := bearerToken(c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token").SetInternal(err)
			}

			var claims Claims
			token, err := parser.ParseWithClaims(raw, &claims, keyFunc)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			caller, err := claims.identity()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			c.Set(identityKey, caller)
			return next(c)
		}
	}
}

// APIOnly skips authentication outside /api/.
func APIOnly(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// IdentityFrom returns the identity JWTAuth stored on c.
func IdentityFrom(c echo.Context) (identity.Identity, bool) {
	caller, ok := c.Get(identityKey).(identity.Identity)
	return caller, ok
}

func callerFrom(c echo.Context) (identity.Identity, error) {
	caller, ok := IdentityFrom(c)
	if !ok {
		return identity.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing token").SetInternal(errNoIdentity)
	}
	return caller, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}
