// Package auth identifies the owner of a request from its bearer token.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrTokenMissing = errors.New("the request must contain a bearer token in the Authorization header")
	ErrTokenInvalid = errors.New("the bearer token is invalid")
	ErrOwnerInvalid = errors.New("the subject of the bearer token must be a user ID")
)

const ownerKey = "ledgerbook-owner"

type Options struct {
	Secret   []byte
	Disabled bool
	DevOwner uuid.UUID // Used for all requests when Disabled is set
}

type httpError struct {
	Error string `json:"error" example:"the bearer token is invalid"`
}

// NewToken issues an HS256 signed token for the owner.
func NewToken(owner uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   owner.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseOwner validates the token and returns the owner it was issued for.
func ParseOwner(token string, secret []byte) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	owner, err := uuid.Parse(claims.Subject)
	if err != nil || owner == uuid.Nil {
		return uuid.Nil, ErrOwnerInvalid
	}

	return owner, nil
}

// Middleware sets the owner of the request or aborts it with 401.
func Middleware(o Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if o.Disabled {
			c.Set(ownerKey, o.DevOwner)
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrTokenMissing.Error()})
			return
		}

		owner, err := ParseOwner(strings.TrimSpace(token), o.Secret)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		c.Set(ownerKey, owner)
		c.Next()
	}
}

// Owner returns the owner set by Middleware.
func Owner(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil, false
	}

	owner, ok := v.(uuid.UUID)
	return owner, ok && owner != uuid.Nil
}
