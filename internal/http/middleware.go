package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tidybooks/tidybooks/internal/auth"
	"github.com/tidybooks/tidybooks/internal/http/respond"
)

// tenantContext verifies the bearer token and resolves the request's
// tenant scope from the X-Tenant-Id header into an auth.RequestContext.
// The tenant header is optional here; handlers that need a tenant reject
// requests without one. Everything downstream trusts the resolved context.
func tenantContext(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				respond.Message(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				respond.Message(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			var rc auth.RequestContext

			if v, ok := claims["uid"].(float64); ok {
				rc.UserID = int64(v)
			}

			if v, ok := claims["role"].(string); ok {
				rc.Role = v
			}

			if h := r.Header.Get("X-Tenant-Id"); h != "" {
				id, err := strconv.ParseInt(h, 10, 64)
				if err != nil || id <= 0 {
					respond.Message(w, http.StatusBadRequest, "invalid tenant id")
					return
				}

				rc.TenantID = id
			}

			next.ServeHTTP(w, r.WithContext(auth.WithRequestContext(r.Context(), rc)))
		})
	}
}
