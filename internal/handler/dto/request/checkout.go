package request

type CreatePaymentIntentRequest struct {
	// Amount is in minor currency units (cents).
	Amount int64 `json:"amount" binding:"required,gt=0"`
}
