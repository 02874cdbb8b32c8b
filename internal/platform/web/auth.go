package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

var errNoToken = errors.New("web: missing bearer token")

// RoundClaims grants control of a single round. The subject is the round id.
type RoundClaims struct {
	Player string `json:"player,omitempty"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

func newTokenIssuer(secret []byte, lifetime time.Duration) *tokenIssuer {
	return &tokenIssuer{
		secret:   secret,
		method:   jwt.SigningMethodHS256,
		lifetime: lifetime,
	}
}

// Sign issues a token for roundID.
func (ti *tokenIssuer) Sign(roundID, player string, now time.Time) (string, error) {
	claims := RoundClaims{
		Player: player,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   roundID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.lifetime)),
		},
	}
	return jwt.NewWithClaims(ti.method, claims).SignedString(ti.secret)
}

// Parse validates a token at the given instant and returns its claims.
func (ti *tokenIssuer) Parse(token string, now time.Time) (*RoundClaims, error) {
	claims := &RoundClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{ti.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// bearerToken reads the token from the Authorization header. Browsers cannot
// set headers on a WebSocket handshake, so a token query parameter is
// accepted too.
func bearerToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			return "", errNoToken
		}
		return token, nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", errNoToken
}

// authenticate rejects requests whose token does not name the round in the
// path.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			s.unauthorized(w)
			return
		}
		claims, err := s.tokens.Parse(token, s.now())
		if err != nil {
			s.logger.Debug("rejected token", "error", err)
			s.unauthorized(w)
			return
		}
		if claims.Subject != mux.Vars(r)["id"] {
			s.unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
