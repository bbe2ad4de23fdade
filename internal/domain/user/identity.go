package user

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// FromContext extracts the authenticated identity from the JWT claims placed
// in the request context by the jwtauth verifier.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = string(RoleMember)
	}

	return Identity{UserID: userID, Role: Role(role)}, nil
}
