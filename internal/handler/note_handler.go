package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"notely/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// ImageUploadResponse is returned after an image attachment upload.
type ImageUploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// AudioUploadResponse is returned after an audio attachment upload.
type AudioUploadResponse struct {
	Success  bool   `json:"success"`
	AudioURL string `json:"audioUrl"`
}

// ListNotes godoc
// @Summary List a user's notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param user_id query string true "Owner ID"
// @Param sort query string false "asc or desc (default)"
// @Param is_favorite query bool false "Only favorites"
// @Success 200 {array} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Request().Context(), actorID, service.ListQuery{
		UserID:       c.QueryParam("user_id"),
		FavoriteOnly: parseFlag(c.QueryParam("is_favorite")),
		Sort:         c.QueryParam("sort"),
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Create a note with optional image and audio attachments
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param user_id formData string true "Owner ID"
// @Param is_favorite formData bool false "Favorite"
// @Param image formData file false "Image attachment"
// @Param audio formData file false "Audio attachment"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload-note [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in, err := noteInput(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.Create(c.Request().Context(), actorID, in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote godoc
// @Summary Update a note, replacing any supplied attachments
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param user_id formData string true "Owner ID"
// @Param is_favorite formData bool false "Favorite"
// @Param image formData file false "Replacement image"
// @Param audio formData file false "Replacement audio"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload-note/{id} [put]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in, err := noteInput(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.Update(c.Request().Context(), actorID, c.Param("id"), in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a note and its attachments
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

// ToggleFavorite godoc
// @Summary Flip a note's favorite flag
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param note_id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{user_id}/{note_id} [patch]
func (h *NoteHandler) ToggleFavorite(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.ToggleFavorite(c.Request().Context(), actorID, c.Param("user_id"), c.Param("note_id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// UploadNoteImage godoc
// @Summary Replace a note's image
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "Note ID"
// @Param noteImage formData file true "Image"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/upload-image/{noteId} [post]
func (h *NoteHandler) UploadNoteImage(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	file, err := formUpload(c, "noteImage")
	if err != nil {
		return err
	}

	note, err := h.noteService.AttachImage(c.Request().Context(), actorID, c.Param("noteId"), file)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ImageUploadResponse{Success: true, ImageURL: *note.ImageURL})
}

// UploadNoteAudio godoc
// @Summary Replace a note's audio recording
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "Note ID"
// @Param noteAudio formData file true "Audio"
// @Success 200 {object} AudioUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/upload-audio/{noteId} [post]
func (h *NoteHandler) UploadNoteAudio(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	file, err := formUpload(c, "noteAudio")
	if err != nil {
		return err
	}

	note, err := h.noteService.AttachAudio(c.Request().Context(), actorID, c.Param("noteId"), file)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, AudioUploadResponse{Success: true, AudioURL: *note.AudioURL})
}

// noteInput reads the multipart fields shared by create and update.
func noteInput(c echo.Context) (service.NoteInput, error) {
	image, err := formUpload(c, "image")
	if err != nil {
		return service.NoteInput{}, err
	}
	audio, err := formUpload(c, "audio")
	if err != nil {
		return service.NoteInput{}, err
	}

	return service.NoteInput{
		Title:      c.FormValue("title"),
		Content:    c.FormValue("content"),
		UserID:     c.FormValue("user_id"),
		IsFavorite: formFlag(c, "is_favorite"),
		Image:      image,
		Audio:      audio,
	}, nil
}

// formFlag returns nil when the form field is absent.
func formFlag(c echo.Context, field string) *bool {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	if _, ok := params[field]; !ok {
		return nil
	}
	v := parseFlag(params.Get(field))
	return &v
}

// parseFlag treats anything strconv.ParseBool rejects as false.
func parseFlag(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}
