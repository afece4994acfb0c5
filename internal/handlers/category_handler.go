package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	sessions SessionProvider
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(sessions SessionProvider) *CategoryHandler {
	return &CategoryHandler{sessions: sessions}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=64" example:"Travel"`
}

// CategoryListResponse lists the default and custom categories
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// GetCategories handles listing the caller's categories
// @Summary     List categories
// @Description Default categories followed by the caller's custom ones
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoryListResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Categories: s.Store.Categories()})
}

// CreateCategory handles adding a custom category
// @Summary     Create a category
// @Description Add a custom category. Adding an existing name is a no-op.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryListResponse "Categories after the change"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Data service unavailable"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	s, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := s.Store.AddCategory(c.Request.Context(), req.Name); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryListResponse{Categories: s.Store.Categories()})
}
