package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	// ContextCollegeKey holds the authenticated *models.College.
	ContextCollegeKey = "college"
	// ContextCollegeIDKey holds the authenticated college's ID as int64.
	ContextCollegeIDKey = "collegeID"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	collegeRepo repositories.ICollegeRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, collegeRepo repositories.ICollegeRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		collegeRepo: collegeRepo,
	}
}

// JWTAuth validates the bearer token and loads the authenticated college into
// the request context. The loaded account's password hash is cleared before
// it is exposed to handlers.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, apperrors.ErrNotAuthenticated.Error())
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		college, err := m.collegeRepo.GetByID(c.Request.Context(), claims.CollegeID)
		if err != nil {
			// Token is valid but the account no longer exists.
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account for token no longer exists")
			return
		}
		college.Password = ""

		c.Set(ContextCollegeKey, college)
		c.Set(ContextCollegeIDKey, college.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// CollegeFromContext returns the authenticated college loaded by JWTAuth.
func CollegeFromContext(c *gin.Context) (*models.College, bool) {
	value, exists := c.Get(ContextCollegeKey)
	if !exists {
		return nil, false
	}
	college, ok := value.(*models.College)
	return college, ok
}
