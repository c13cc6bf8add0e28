package api

import (
	"errors"
	"net/http"

	reqdto "cedra-backend/internal/handler/dto/request"
	resdto "cedra-backend/internal/handler/dto/response"
	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Create payment intent
// @Description Register a payment intent and return its client secret
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePaymentIntentRequest true "Payment intent request"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Router /api/checkout/create-payment-intent [post]
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req reqdto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	clientSecret, err := h.cmds.CreatePaymentIntent(c.Request.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, errs.ErrAmountTooLow) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Amount below minimum", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Payment intent creation failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentIntentResponse{ClientSecret: clientSecret})
}
