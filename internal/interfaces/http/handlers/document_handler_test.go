package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domainerrors "logichain.backend/internal/domain/errors"
)

type stubDocumentService struct {
	path string
	data []byte
	name string
	err  error
}

func (s *stubDocumentService) Generate(_ context.Context, _ uuid.UUID) (string, error) {
	return s.path, s.err
}

func (s *stubDocumentService) Download(_ context.Context, _ uuid.UUID) ([]byte, string, error) {
	return s.data, s.name, s.err
}

func documentRouter(svc DocumentService) *gin.Engine {
	h := NewDocumentHandler(svc)
	r := gin.New()
	r.POST("/contracts/:id/document", h.Generate)
	r.GET("/contracts/:id/document", h.Download)
	return r
}

func TestDocumentGenerateCreated(t *testing.T) {
	svc := &stubDocumentService{path: "/data/pdfs/LC-2026-001_v1.pdf"}
	r := documentRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/contracts/"+uuid.NewString()+"/document", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "LC-2026-001_v1.pdf")
}

func TestDocumentDownloadHeaders(t *testing.T) {
	svc := &stubDocumentService{data: []byte("%PDF-1.4"), name: "LC-2026-001_v1.pdf"}
	r := documentRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/contracts/"+uuid.NewString()+"/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="LC-2026-001_v1.pdf"`, w.Header().Get("Content-Disposition"))
	require.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestDocumentDownloadMissing(t *testing.T) {
	r := documentRouter(&stubDocumentService{err: domainerrors.ErrNoDocument})

	w := doJSON(t, r, http.MethodGet, "/contracts/"+uuid.NewString()+"/document", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "no document generated for this contract")
}
