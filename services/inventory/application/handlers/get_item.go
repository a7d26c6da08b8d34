package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// GetItemHandler handles GET /api/items/{id}.
type GetItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewGetItemHandler(svc *appsvcs.Services, log logger.Logger) *GetItemHandler {
	return &GetItemHandler{svc: svc, log: log}
}

// Execute returns one item with its documents.
//
//	@Summary		Get item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		int	true	"Item ID"
//	@Success		200	{object}	ItemDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.svc.Item.GetWithDocuments(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	docs := make([]DocumentResponse, len(view.Documents))
	for i, doc := range view.Documents {
		docs[i] = toDocumentResponse(doc)
	}
	httpx.JSON(w, http.StatusOK, ItemDetailResponse{
		ItemResponse: toItemResponse(view.Item),
		Documents:    docs,
	})
}
