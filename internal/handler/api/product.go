package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "cedra-backend/internal/handler/dto/request"
	resdto "cedra-backend/internal/handler/dto/response"
	"cedra-backend/internal/handler/httperr"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"
	"cedra-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	cmds commands.ProductCommands
	q    queries.ProductQueries
}

func NewProductHandler(cmds commands.ProductCommands, q queries.ProductQueries) *ProductHandler {
	return &ProductHandler{cmds: cmds, q: q}
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductList(views))
}

// @Summary Search products
// @Tags catalog
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Router /api/products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("missing search term"), "Missing search term", nil)
		return
	}
	views, err := h.q.Search(c.Request.Context(), term)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductList(views))
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body reqdto.CreateProductRequest true "Create product request"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromProductView(view))
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CategoryResponse
// @Router /api/categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	views, err := h.q.Categories(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryList(views))
}

// @Summary List subcategories of a category
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} resdto.CategoryResponse
// @Failure 400 {object} httperr.Response
// @Router /api/categories/{id}/subcategories [get]
func (h *ProductHandler) Subcategories(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category id", nil)
		return
	}
	views, err := h.q.Subcategories(c.Request.Context(), categoryID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryList(views))
}
