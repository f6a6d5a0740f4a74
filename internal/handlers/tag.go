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

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, tag)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid tag id")
		return
	}

	tag, err := h.tagService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid tag id")
		return
	}

	var req models.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid tag id")
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.Error(c, err)
		return
	}
	utils.NoContent(c)
}
