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

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	previewService  *services.PreviewService
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService, previewService *services.PreviewService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		previewService:  previewService,
	}
}

func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.bookmarkService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, bookmarks)
}

func (h *BookmarkHandler) CreateBookmark(c *gin.Context) {
	var req models.BookmarkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	bookmark, err := h.bookmarkService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, bookmark)
}

func (h *BookmarkHandler) GetBookmark(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid bookmark id")
		return
	}

	bookmark, err := h.bookmarkService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, bookmark)
}

func (h *BookmarkHandler) UpdateBookmark(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid bookmark id")
		return
	}

	var req models.BookmarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	bookmark, err := h.bookmarkService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, bookmark)
}

func (h *BookmarkHandler) DeleteBookmark(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid bookmark id")
		return
	}

	if err := h.bookmarkService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.Error(c, err)
		return
	}
	utils.NoContent(c)
}

// FetchPreview scrapes page metadata for the client to fold into a
// bookmark create or update. Fetch failures come back as empty fields,
// never an error.
func (h *BookmarkHandler) FetchPreview(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	preview := h.previewService.FetchPreview(c.Request.Context(), req.URL)
	utils.Success(c, preview)
}
