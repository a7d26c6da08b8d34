package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain"
)

// DeleteDocumentHandler handles DELETE /api/documents/{id} and
// POST /api/documents/{id}/delete.
type DeleteDocumentHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewDeleteDocumentHandler(svc *appsvcs.Services, log logger.Logger) *DeleteDocumentHandler {
	return &DeleteDocumentHandler{svc: svc, log: log}
}

// Execute deletes one document and sends the browser back where it came from.
// Deleting a document that no longer exists succeeds.
//
//	@Summary		Delete document
//	@Tags			documents
//	@Param			id	path	int	true	"Document ID"
//	@Success		303	"Redirect to the same-origin Referer, or /api/items"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/documents/{id} [delete]
//	@Router			/api/documents/{id}/delete [post]
func (h *DeleteDocumentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "document_id", domain.ErrDocumentNotFound)
	if err != nil {
		httpx.RedirectBack(w, r, ItemsPath)
		return
	}

	doc, err := h.svc.Attachment.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if doc != nil {
		h.log.InfoContext(r.Context(), "document removed", "document_id", doc.ID, "item_id", doc.ItemID)
	}
	httpx.RedirectBack(w, r, ItemsPath)
}
