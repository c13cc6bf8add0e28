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

type CompanyHandler struct {
	cmds commands.CompanyCommands
	q    queries.CompanyQueries
}

func NewCompanyHandler(cmds commands.CompanyCommands, q queries.CompanyQueries) *CompanyHandler {
	return &CompanyHandler{cmds: cmds, q: q}
}

// @Summary Primary company
// @Description Return the caller's primary company with billing fields
// @Tags company
// @Produce json
// @Success 200 {object} resdto.CompanyResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/company/me [get]
func (h *CompanyHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}

	view, err := h.q.PrimaryCompany(c.Request.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoCompany), errors.Is(err, errs.ErrCompanyNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No linked company", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCompanyView(view))
}

// @Summary Invite a member
// @Description Link an email to the caller's company, creating the account if needed
// @Tags company
// @Accept json
// @Produce json
// @Param request body reqdto.InviteRequest true "Invite request"
// @Success 200 {object} resdto.InviteResponse
// @Success 201 {object} resdto.InviteResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/company/invite [post]
func (h *CompanyHandler) Invite(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}

	var req reqdto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Invite(c.Request.Context(), identity.UserID, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		case errors.Is(err, errs.ErrCompanyForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errors.Is(err, errs.ErrNoCompany), errors.Is(err, errs.ErrCompanyNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No linked company", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resdto.FromInviteResult(result))
}

// @Summary Reset a member's password
// @Description Issue and mail a temporary password for a company member
// @Tags company
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} resdto.ResetPasswordResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/company/users/{id}/reset-password [post]
func (h *CompanyHandler) ResetMemberPassword(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no identity"), "Not authenticated", nil)
		return
	}

	targetID := c.Param("id")
	if targetID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing user id"), "Invalid request", nil)
		return
	}

	result, err := h.cmds.ResetMemberPassword(c.Request.Context(), identity.UserID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrMemberNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Member not found in company", nil)
		case errors.Is(err, errs.ErrCompanyForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errors.Is(err, errs.ErrNoCompany), errors.Is(err, errs.ErrCompanyNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No linked company", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.ResetPasswordResponse{EmailSent: result.EmailSent})
}
