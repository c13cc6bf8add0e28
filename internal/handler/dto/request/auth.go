package request

import (
	"cedra-backend/internal/domain/user"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *SignupRequest) ToDomain() (user.Name, user.Credentials, error) {
	name, err := user.NewName(r.Name)
	if err != nil {
		return user.Name{}, user.Credentials{}, err
	}
	credentials, err := user.NewCredentials(r.Email, r.Password)
	if err != nil {
		return user.Name{}, user.Credentials{}, err
	}
	return name, credentials, nil
}

// LoginRequest does not re-check password strength: a short password is a
// credential mismatch (401), not a validation error.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.LoginCredentials(r.Email, r.Password)
}
