package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

// RelayClaims are the claims a relay signs for the caller it forwards. The
// subject is the caller's address.
type RelayClaims struct {
	jwt.RegisteredClaims
}

// RelayValidator checks HMAC-signed relay tokens.
type RelayValidator struct {
	Secret []byte
	Issuer string
}

// Validate parses a token and returns the caller address it vouches for.
func (v *RelayValidator) Validate(tokenStr string) (common.Address, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	claims := &RelayClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		return common.Address{}, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return common.Address{}, errors.New("invalid token")
	}
	if !common.IsHexAddress(claims.Subject) {
		return common.Address{}, errors.New("token subject is not an address")
	}
	return common.HexToAddress(claims.Subject), nil
}

// Sign issues a token for caller. Used by relays and tooling.
func (v *RelayValidator) Sign(caller common.Address, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = caller.Hex()
	if claims.Issuer == "" {
		claims.Issuer = v.Issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, RelayClaims{RegisteredClaims: claims}).SignedString(v.Secret)
}

type callerSinkKey struct{}

func withCallerSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, callerSinkKey{}, sink)
}

func recordCaller(ctx context.Context, caller common.Address) {
	if sink, ok := ctx.Value(callerSinkKey{}).(*string); ok {
		*sink = caller.Hex()
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="relay"`)
	reply.JSON(w, http.StatusUnauthorized, &api.Error{Error: msg})
}

// RelayAuth binds the caller named by a bearer token to the request context.
// Requests without a token continue anonymously, which only the permissionless
// operations accept. A nil validator rejects every token.
func RelayAuth(validator *RelayValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Invalid Authorization header format (expected 'Bearer <token>')")
				return
			}
			if validator == nil {
				unauthorized(w, "Authentication not configured")
				return
			}

			caller, err := validator.Validate(parts[1])
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			recordCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
		})
	}
}
