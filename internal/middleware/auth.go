package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextSaloonID = "saloonID"
	ContextUserRole = "userRole"
)

var (
	errMissingHeader  = errors.New("missing_authorization_header")
	errInvalidHeader  = errors.New("invalid_authorization_header")
	errInvalidToken   = errors.New("invalid_token")
	errInvalidPayload = errors.New("invalid_token_payload")
)

type identity struct {
	userID   uint
	saloonID uint
	role     string
}

// AuthMiddleware requires a valid bearer token carrying sub and saloonId.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			httperr.Unauthorized(c, err.Error(), "Authentication required.")
			return
		}

		id.set(c)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but rejects a token that is
// present and invalid, so a guest is never silently mistaken for a user.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		id, err := parseBearer(header, secret)
		if err != nil {
			httperr.Unauthorized(c, err.Error(), "Invalid credentials.")
			return
		}

		id.set(c)
		c.Next()
	}
}

// UserID returns the authenticated user, or nil for guests.
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id := v.(uint)
	return &id
}

func SaloonID(c *gin.Context) uint {
	return c.MustGet(ContextSaloonID).(uint)
}

func (id identity) set(c *gin.Context) {
	c.Set(ContextUserID, id.userID)
	c.Set(ContextSaloonID, id.saloonID)
	c.Set(ContextUserRole, id.role)
}

func parseBearer(header, secret string) (identity, error) {
	if header == "" {
		return identity{}, errMissingHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return identity{}, errInvalidHeader
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return identity{}, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, errInvalidToken
	}

	userID, ok1 := claims["sub"].(float64)
	saloonID, ok2 := claims["saloonId"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 {
		return identity{}, errInvalidPayload
	}

	return identity{userID: uint(userID), saloonID: uint(saloonID), role: role}, nil
}
