package api

import (
	"errors"
	"net/http"

	reqdto "cedra-backend/internal/handler/dto/request"
	resdto "cedra-backend/internal/handler/dto/response"
	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/handler/middleware"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	cmds commands.AddressCommands
	q    queries.AddressQueries
}

func NewAddressHandler(cmds commands.AddressCommands, q queries.AddressQueries) *AddressHandler {
	return &AddressHandler{cmds: cmds, q: q}
}

// @Summary List my addresses
// @Description Personal addresses plus visible company addresses
// @Tags addresses
// @Produce json
// @Success 200 {array} resdto.AddressResponse
// @Failure 401 {object} httperr.Response
// @Router /api/addresses/mine [get]
func (h *AddressHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}

	views, err := h.q.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAddressList(views))
}

// @Summary Create address
// @Description Create a personal or company address
// @Tags addresses
// @Accept json
// @Produce json
// @Param request body reqdto.CreateAddressRequest true "Create address request"
// @Success 201 {object} resdto.AddressResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}

	var req reqdto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), identity.UserID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAddressCompanyRequired), errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		case errors.Is(err, errs.ErrNotCompanyMember):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not a member of this company", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAddressView(view))
}
