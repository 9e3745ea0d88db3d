package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextInstitutionID = "institutionID"
	ContextEmail         = "email"
)

// JWTAuth validates the bearer token and stores the caller identity on the
// request context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextInstitutionID, claims.InstitutionID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
