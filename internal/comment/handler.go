package comment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mediashare/service/internal/response"
)

// Handler holds HTTP handlers for comment endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new comment Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type addCommentRequest struct {
	Author  string `json:"author"  example:"Alice"`
	Content string `json:"content" example:"Great shot!"`
}

// List godoc
//
//	@Summary		List comments
//	@Description	Returns all comments for a media item, oldest first.
//	@Tags			comments
//	@Produce		json
//	@Param			mediaId	path		string	true	"Media item ID"
//	@Success		200		{array}		Comment
//	@Failure		500		{object}	response.APIError
//	@Router			/comments/{mediaId} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaId")

	comments, err := h.svc.ListByMedia(r.Context(), mediaID)
	if err != nil {
		log.Printf("comments: list for media %s: %v", mediaID, err)
		response.InternalError(w, "failed to fetch comments")
		return
	}

	response.OK(w, comments)
}

// Add godoc
//
//	@Summary		Add comment
//	@Description	Appends a comment to a media item. Comments cannot be edited or deleted.
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			mediaId	path		string				true	"Media item ID"
//	@Param			request	body		addCommentRequest	true	"Comment"
//	@Success		201		{object}	Comment
//	@Failure		400		{object}	response.APIError
//	@Failure		404		{object}	response.APIError
//	@Failure		500		{object}	response.APIError
//	@Router			/comments/{mediaId} [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaId")

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	c, err := h.svc.Add(r.Context(), mediaID, req.Author, req.Content)
	if errors.Is(err, ErrValidation) {
		response.BadRequest(w, err.Error())
		return
	}
	if errors.Is(err, ErrMediaNotFound) {
		response.NotFound(w, "media item not found")
		return
	}
	if err != nil {
		log.Printf("comments: add to media %s: %v", mediaID, err)
		response.InternalError(w, "failed to add comment")
		return
	}

	response.Created(w, c)
}
