package media

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mediashare/service/internal/response"
)

// Handler holds HTTP handlers for media endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new media Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type uploadURLRequest struct {
	FileName     string `json:"fileName"     example:"cat.mp4"`
	FileType     string `json:"fileType"     example:"video/mp4"`
	UploaderName string `json:"uploaderName" example:"Alice"`
	Description  string `json:"description"  example:"A cat"`
}

// List godoc
//
//	@Summary		Paginated media feed
//	@Description	Returns media items newest first, with comments attached. Video thumbnails are generated lazily during this call.
//	@Tags			media
//	@Produce		json
//	@Param			page	query		int	false	"Page number (1-based)"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	Page
//	@Failure		500		{object}	response.APIError
//	@Router			/media [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageLimit)

	result, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("media: list page=%d limit=%d: %v", page, limit, err)
		response.InternalError(w, "failed to fetch media items")
		return
	}

	response.OK(w, result)
}

// Get godoc
//
//	@Summary		Single media item
//	@Tags			media
//	@Produce		json
//	@Param			id	path		string	true	"Media item ID"
//	@Success		200	{object}	Item
//	@Failure		404	{object}	response.APIError
//	@Failure		500	{object}	response.APIError
//	@Router			/media/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "media item not found")
			return
		}
		log.Printf("media: get %s: %v", id, err)
		response.InternalError(w, "failed to fetch media item")
		return
	}

	response.OK(w, item)
}

// Upload godoc
//
//	@Summary		Server-side upload
//	@Description	Uploads a file through the backend: the blob is written to object storage, then the media record is created.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file			formData	file	true	"Media file"
//	@Param			uploaderName	formData	string	true	"Uploader display name"
//	@Param			description		formData	string	true	"Description"
//	@Success		201	{object}	Item
//	@Failure		400	{object}	response.APIError
//	@Failure		413	{object}	response.APIError
//	@Failure		500	{object}	response.APIError
//	@Router			/media [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, ok := h.readFile(w, r)
	if !ok {
		return
	}

	uploaderName := r.FormValue("uploaderName")
	description := r.FormValue("description")
	if strings.TrimSpace(uploaderName) == "" {
		response.BadRequest(w, "uploader name is required")
		return
	}
	if strings.TrimSpace(description) == "" {
		response.BadRequest(w, "description is required")
		return
	}

	item, err := h.svc.Upload(r.Context(), file, uploaderName, description, "")
	if errors.Is(err, ErrValidation) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		log.Printf("media: upload: %v", err)
		response.InternalError(w, "failed to upload media")
		return
	}

	response.Created(w, item)
}

// CreateUploadURL godoc
//
//	@Summary		Issue a presigned upload URL
//	@Description	Creates the media record immediately and returns a time-limited URL for a direct client-to-storage upload.
//	@Tags			media
//	@Accept			json
//	@Produce		json
//	@Param			request	body		uploadURLRequest	true	"Upload metadata"
//	@Success		201		{object}	UploadURLResult
//	@Failure		400		{object}	response.APIError
//	@Failure		500		{object}	response.APIError
//	@Router			/media/upload-url [post]
func (h *Handler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	result, err := h.svc.CreateUploadURL(r.Context(), req.FileName, req.FileType, req.UploaderName, req.Description)
	if errors.Is(err, ErrValidation) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		log.Printf("media: upload-url: %v", err)
		response.InternalError(w, "failed to generate presigned URL")
		return
	}

	response.Created(w, result)
}

// DirectUpload godoc
//
//	@Summary		Complete a direct upload
//	@Description	Accepts the file plus an optional completion token. Malformed tokens fall back to form fields; missing metadata gets sentinel defaults.
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file			formData	file	true	"Media file"
//	@Param			uploadToken		formData	string	false	"Base64 completion token"
//	@Param			uploaderName	formData	string	false	"Uploader display name"
//	@Param			description		formData	string	false	"Description"
//	@Success		201	{object}	Item
//	@Failure		400	{object}	response.APIError
//	@Failure		413	{object}	response.APIError
//	@Failure		500	{object}	response.APIError
//	@Router			/media/direct-upload [post]
func (h *Handler) DirectUpload(w http.ResponseWriter, r *http.Request) {
	file, ok := h.readFile(w, r)
	if !ok {
		return
	}

	item, err := h.svc.CompleteDirectUpload(r.Context(), file,
		r.FormValue("uploadToken"), r.FormValue("uploaderName"), r.FormValue("description"))
	if errors.Is(err, ErrValidation) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		log.Printf("media: direct-upload: %v", err)
		response.ErrorWithDetails(w, http.StatusInternalServerError, "failed to upload media", err.Error())
		return
	}

	response.Created(w, item)
}

// readFile parses the multipart form and reads the "file" part into memory.
// It writes the error response itself and reports ok=false on failure.
func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) (File, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "file size too large, maximum allowed is 10MB")
			return File{}, false
		}
		response.BadRequest(w, "failed to parse form data")
		return File{}, false
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return File{}, false
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		response.BadRequest(w, "failed to read uploaded file")
		return File{}, false
	}

	return File{
		Data:        data,
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
