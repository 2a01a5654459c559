package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sagacious/sagacious/internal/note"
	"github.com/sagacious/sagacious/pkg/model"
	"github.com/sagacious/sagacious/pkg/web"
)

func newTestServer() *web.Server {
	repo := model.NewRepository(model.NewMemoryStore(), model.NewBinding("testdb", ""))
	svc := note.NewService(repo)
	s := web.New()
	NewNoteHandler(svc, nil).Register(s)
	return s
}

func TestNoteHandler_CRUD(t *testing.T) {
	s := newTestServer()

	// create
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"name":"a.txt","content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	s.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// get
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "a.txt", got["name"])
	require.Equal(t, "hi", got["content"])

	// update
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/notes/"+id, strings.NewReader(`{"name":"b.txt","content":"new"}`))
	req.Header.Set("Content-Type", "application/json")
	s.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// delete
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/notes/"+id, nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	// get after delete
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+id, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_InvalidID(t *testing.T) {
	s := newTestServer()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/not-an-id", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteHandler_UnknownID(t *testing.T) {
	s := newTestServer()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+primitive.NewObjectID().Hex(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteHandler_AttachmentUnconfigured(t *testing.T) {
	s := newTestServer()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+primitive.NewObjectID().Hex()+"/attachment", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+primitive.NewObjectID().Hex()+"/attachment/url", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNoteHandler_AttachmentURLExpiryBounds(t *testing.T) {
	s := newTestServer()
	id := primitive.NewObjectID().Hex()
	for _, q := range []string{"0", "61", "-5", "abc"} {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/"+id+"/attachment/url?expires="+q, nil))
		require.Equal(t, http.StatusBadRequest, w.Code, "expires=%s", q)
	}
}
