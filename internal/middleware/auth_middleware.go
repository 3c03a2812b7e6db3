package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextProfessorID    = "professorID"
	ContextProfessorEmail = "professorEmail"
)

// JWTAuth validates the Authorization bearer token and stores the caller's
// identity in the request context. Requests without a valid token are
// rejected with 401.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "Missing or malformed authorization header", dto.ErrorCodeUnauthorized)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token expired", dto.ErrorCodeExpiredToken)
				return
			}
			abortUnauthorized(c, "Invalid token", dto.ErrorCodeInvalidToken)
			return
		}

		c.Set(ContextProfessorID, claims.ProfessorID)
		c.Set(ContextProfessorEmail, claims.Email)
		c.Next()
	}
}

// OptionalJWTAuth sets the caller's identity when a valid bearer token is
// present and lets the request through either way. Used on routes that also
// accept a signed download token.
func OptionalJWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := auth.ExtractBearerToken(c.GetHeader("Authorization")); err == nil {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				c.Set(ContextProfessorID, claims.ProfessorID)
				c.Set(ContextProfessorEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// ProfessorID returns the authenticated caller's ID from the context.
func ProfessorID(c *gin.Context) string {
	return c.GetString(ContextProfessorID)
}

func abortUnauthorized(c *gin.Context, message string, code dto.ErrorCode) {
	body := dto.NewErrorResponse(http.StatusUnauthorized,
		c.Request.URL.Path, c.Request.Method, message, code)
	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}
