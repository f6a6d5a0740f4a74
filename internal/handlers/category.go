package handlers

import (
	"github.com/ajaybhatia/xync-server/internal/middleware"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/ajaybhatia/xync-server/internal/services"
	"github.com/ajaybhatia/xync-server/internal/utils"
	"github.com/ajaybhatia/xync-server/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, category)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid category id")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid category id")
		return
	}

	var req models.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.Error(c, err)
		return
	}
	utils.NoContent(c)
}
