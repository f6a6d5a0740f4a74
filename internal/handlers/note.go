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

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.noteService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, notes)
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req models.NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, note)
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid note id")
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, note)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid note id")
		return
	}

	var req models.NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, note)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid note id")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.Error(c, err)
		return
	}
	utils.NoContent(c)
}
