package response

import "cedra-backend/internal/usecase/queries"

type AuthResponse struct {
	User *queries.ResolvedIdentity `json:"user"`
}
