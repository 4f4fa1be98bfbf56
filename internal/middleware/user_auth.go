package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated user id as an
// ObjectID hex string.
const UserIDKey = "userId"

var (
	errMissingToken = errors.New("missing token")
	errTokenFormat  = errors.New("invalid token format")
	errUserIDClaim  = errors.New("userId claim missing")
)

// UserAuth validates user JWT tokens and injects the userId into the context.
func UserAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserIDFromHeader(c.GetHeader("Authorization"), secret)
		if err != nil {
			logger.Warn("bearer token rejected",
				zap.String("path", c.FullPath()),
				zap.Error(err))
			message := "unauthorized"
			if errors.Is(err, errMissingToken) {
				message = "missing token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserIDFromHeader parses an "Authorization: Bearer <jwt>" header signed with
// secret and returns its userId claim.
func UserIDFromHeader(header, secret string) (string, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", errMissingToken
	}

	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errTokenFormat
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", errUserIDClaim
	}
	if !primitive.IsValidObjectID(userID) {
		return "", errors.New("invalid userId")
	}
	return userID, nil
}
