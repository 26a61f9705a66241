package transfer

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Principal is the already-authenticated caller handed to services by the
// auth middleware.
type Principal struct {
	ID          uuid.UUID
	IsSuperuser bool
}
