package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// UploadsPath prefixes every document download URL.
const UploadsPath = "/uploads/"

// FetchDocumentHandler handles GET /uploads/{storedName}.
type FetchDocumentHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewFetchDocumentHandler(svc *appsvcs.Services, log logger.Logger) *FetchDocumentHandler {
	return &FetchDocumentHandler{svc: svc, log: log}
}

// Execute serves the content of a stored document. Range and conditional
// requests are handled by http.ServeContent.
//
//	@Summary		Download document
//	@Tags			documents
//	@Produce		octet-stream
//	@Param			storedName	path		string	true	"Stored file name"
//	@Success		200			{file}		binary
//	@Failure		404			{object}	ErrorResponse
//	@Router			/uploads/{storedName} [get]
func (h *FetchDocumentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "storedName")

	obj, err := h.svc.Attachment.Open(r.Context(), name)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	defer obj.Close() //nolint:errcheck

	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, obj.Name, obj.ModTime, obj)
}
