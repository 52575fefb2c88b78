package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogapi/internal/pkg/jwtutil"
	"blogapi/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextClaimsKey   = "claims"
)

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthJWT admits requests carrying a valid bearer token. A missing header or
// an empty token part is answered with 401. A token that is present but fails
// verification, or is sent under a scheme other than Bearer, gets 403.
// revoked may be nil.
func AuthJWT(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		scheme, token, _ := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		// A credential sent under another scheme is present but unusable.
		if !strings.EqualFold(scheme, "Bearer") {
			response.Abort(c, http.StatusForbidden, jwtutil.ErrInvalidToken.Error())
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Abort(c, http.StatusForbidden, jwtutil.ErrInvalidToken.Error())
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				_ = c.Error(fmt.Errorf("check token revocation failed: %w", err))
				response.Abort(c, http.StatusInternalServerError, response.MsgInternal)
				return
			}
			if isRevoked {
				response.Abort(c, http.StatusForbidden, jwtutil.ErrInvalidToken.Error())
				return
			}
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by AuthJWT.
func ClaimsFromContext(c *gin.Context) (*jwtutil.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwtutil.Claims)
	return claims, ok
}
