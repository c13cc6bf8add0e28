package request

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	// Role is coerced to employee unless it normalizes to admin.
	Role string `json:"role"`
}
