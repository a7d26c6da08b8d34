package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

const uploadField = "file"

// UploadDocumentHandler handles POST /api/items/{id}/documents.
type UploadDocumentHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewUploadDocumentHandler(svc *appsvcs.Services, log logger.Logger) *UploadDocumentHandler {
	return &UploadDocumentHandler{svc: svc, log: log}
}

// Execute streams the "file" part of a multipart body into the blob store and
// records it as a document of the item. A missing part, an empty file name,
// or an empty file is accepted and does nothing.
//
//	@Summary		Upload document
//	@Tags			documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		int		true	"Item ID"
//	@Param			file	formData	file	true	"Document content"
//	@Success		303		"Redirect to /api/items/{id}"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Router			/api/items/{id}/documents [post]
func (h *UploadDocumentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Expected a multipart/form-data body")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			writeError(w, r, h.log, fmt.Errorf("read multipart body: %w", err))
			return
		}
		if part.FormName() != uploadField {
			_ = part.Close()
			continue
		}

		_, err = h.svc.Attachment.Upload(r.Context(), id, part.FileName(), part)
		_ = part.Close()
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		break
	}

	httpx.Redirect(w, r, itemPath(id))
}
