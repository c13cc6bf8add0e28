package response

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
