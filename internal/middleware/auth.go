package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/config"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextCompanyID = "companyID"
	ContextUserRole  = "userRole"
)

// AuthMiddleware validates the bearer token issued at login and attaches
// the caller's session to the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		sess, ok := sessionFromClaims(claims)
		if !ok {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextCompanyID, sess.CompanyID)
		c.Set(ContextUserRole, sess.Role)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))

		c.Next()
	}
}

func sessionFromClaims(claims jwt.MapClaims) (session.Session, bool) {
	sub, _ := claims["sub"].(string)
	company, _ := claims["companyId"].(string)
	role, _ := claims["role"].(string)

	userID, err := uuid.Parse(sub)
	if err != nil {
		return session.Session{}, false
	}
	companyID, err := uuid.Parse(company)
	if err != nil {
		return session.Session{}, false
	}

	s := session.Session{CompanyID: companyID, UserID: userID, Role: role}
	return s, s.Valid()
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Abort(c, http.StatusUnauthorized, code, "Não autorizado.")
}

// RequireOwner restricts a route to company owners.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok || !sess.IsOwner() {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acesso restrito ao proprietário.")
			return
		}
		c.Next()
	}
}
