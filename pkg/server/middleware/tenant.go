package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const TenantClaim = "tenant_id"

type tenantKey struct{}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

func TenantFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantKey{}).(string)
	return tenantID, ok && tenantID != ""
}

// Tenant authenticates the bearer token and places its tenant claim on the
// request context.
func Tenant(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger := zerolog.Ctx(req.Context())

			header := req.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				deny(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				logger.Debug().Err(err).Msg("rejected bearer token")
				deny(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			tenantID, _ := claims[TenantClaim].(string)
			if tenantID == "" {
				deny(w, http.StatusForbidden, "Tenant context required")
				return
			}

			ctx := WithTenant(req.Context(), tenantID)
			ctx = logger.With().Str("tenant_id", tenantID).Logger().WithContext(ctx)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// IssueToken signs a tenant token, used by operators and tests.
func IssueToken(secret []byte, tenantID string, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{TenantClaim: tenantID}
	for k, v := range claims {
		all[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString(secret)
}

func deny(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Detail: detail})
}
