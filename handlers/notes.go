package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sagacious/sagacious/internal/note"
	"github.com/sagacious/sagacious/internal/storage"
	"github.com/sagacious/sagacious/pkg/logger"
	"github.com/sagacious/sagacious/pkg/model"
	"github.com/sagacious/sagacious/pkg/web"
)

// NoteHandler serves the notes API through the typed route table.
type NoteHandler struct {
	svc   *note.Service
	blobs *storage.BlobStore // optional; attachment routes answer 503 when nil
}

func NewNoteHandler(svc *note.Service, blobs *storage.BlobStore) *NoteHandler {
	return &NoteHandler{svc: svc, blobs: blobs}
}

// Register installs the notes routes on the server.
func (h *NoteHandler) Register(s *web.Server) {
	s.On(web.POST, "/api/notes", h.Create)
	s.On(web.GET, "/api/notes/:id", h.Get)
	s.On(web.PATCH, "/api/notes/:id", h.Update)
	s.On(web.DELETE, "/api/notes/:id", h.Delete)
	s.On(web.PUT, "/api/notes/:id/attachment", h.PutAttachment)
	s.On(web.GET, "/api/notes/:id/attachment", h.GetAttachment)
	s.On(web.GET, "/api/notes/:id/attachment/url", h.AttachmentURL)
}

func writeError(res *web.Response, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		_ = res.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	case errors.Is(err, model.ErrNotFound):
		_ = res.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		logger.Errorf("notes: store failure: %v", err)
		_ = res.JSON(http.StatusInternalServerError, map[string]string{"error": "storage failure"})
	}
}

// Create accepts { name, content } and returns the persisted note.
func (h *NoteHandler) Create(req *web.Request, res *web.Response) {
	var body struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := req.BindJSON(&body); err != nil {
		_ = res.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	n, err := h.svc.Create(req.Context(), body.Name, body.Content)
	if err != nil {
		writeError(res, err)
		return
	}
	_ = res.JSON(http.StatusCreated, n)
}

// Get returns the note including its content.
func (h *NoteHandler) Get(req *web.Request, res *web.Response) {
	n, err := h.svc.Get(req.Context(), req.Param("id"))
	if err != nil {
		writeError(res, err)
		return
	}
	_ = res.JSON(http.StatusOK, n)
}

// Update replaces the content (and optionally the name) of an existing note.
func (h *NoteHandler) Update(req *web.Request, res *web.Response) {
	var body struct {
		Name    *string `json:"name,omitempty"`
		Content string  `json:"content"`
	}
	if err := req.BindJSON(&body); err != nil {
		_ = res.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	n, err := h.svc.Update(req.Context(), req.Param("id"), body.Content, body.Name)
	if err != nil {
		writeError(res, err)
		return
	}
	_ = res.JSON(http.StatusOK, n)
}

// Delete removes a note by identifier.
func (h *NoteHandler) Delete(req *web.Request, res *web.Response) {
	if err := h.svc.Delete(req.Context(), req.Param("id")); err != nil {
		writeError(res, err)
		return
	}
	_ = res.Send(http.StatusNoContent, "")
}

func (h *NoteHandler) attachmentKey(id string) string { return "notes/" + id }

// PutAttachment streams the request body into blob storage for the note.
func (h *NoteHandler) PutAttachment(req *web.Request, res *web.Response) {
	if h.blobs == nil {
		_ = res.JSON(http.StatusServiceUnavailable, map[string]string{"error": "blob storage not configured"})
		return
	}
	id := req.Param("id")
	if _, err := h.svc.Get(req.Context(), id); err != nil {
		writeError(res, err)
		return
	}
	key := h.attachmentKey(id)
	if err := h.blobs.Put(req.Context(), key, req.Body(), req.ContentLength(), req.Header("Content-Type")); err != nil {
		logger.Errorf("notes: upload attachment %s: %v", key, err)
		_ = res.JSON(http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		return
	}
	_ = res.JSON(http.StatusCreated, map[string]string{"key": key})
}

// GetAttachment streams the stored attachment back to the client.
func (h *NoteHandler) GetAttachment(req *web.Request, res *web.Response) {
	if h.blobs == nil {
		_ = res.JSON(http.StatusServiceUnavailable, map[string]string{"error": "blob storage not configured"})
		return
	}
	key := h.attachmentKey(req.Param("id"))
	obj, err := h.blobs.Get(req.Context(), key)
	if err != nil {
		_ = res.JSON(http.StatusNotFound, map[string]string{"error": "no attachment"})
		return
	}
	defer obj.Close()
	_ = res.Header("Content-Type", "application/octet-stream")
	_ = res.SendStream(http.StatusOK, obj)
}

// AttachmentURL returns a time-limited presigned download URL so clients can
// fetch large attachments straight from blob storage. The `expires` query
// parameter overrides the 15-minute default, capped at an hour.
func (h *NoteHandler) AttachmentURL(req *web.Request, res *web.Response) {
	expiry := 15 * time.Minute
	if v := req.Query("expires"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil || mins < 1 || mins > 60 {
			_ = res.JSON(http.StatusBadRequest, map[string]string{"error": "expires must be 1..60 minutes"})
			return
		}
		expiry = time.Duration(mins) * time.Minute
	}
	if h.blobs == nil {
		_ = res.JSON(http.StatusServiceUnavailable, map[string]string{"error": "blob storage not configured"})
		return
	}
	id := req.Param("id")
	if _, err := h.svc.Get(req.Context(), id); err != nil {
		writeError(res, err)
		return
	}
	url, err := h.blobs.PresignedURL(req.Context(), h.attachmentKey(id), expiry)
	if err != nil {
		logger.Errorf("notes: presign attachment %s: %v", h.attachmentKey(id), err)
		_ = res.JSON(http.StatusInternalServerError, map[string]string{"error": "presign failed"})
		return
	}
	_ = res.JSON(http.StatusOK, map[string]string{"url": url})
}
