package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// DeleteItemHandler handles DELETE /api/items/{id} and POST /api/items/{id}/delete.
type DeleteItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewDeleteItemHandler(svc *appsvcs.Services, log logger.Logger) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, log: log}
}

// Execute deletes an item together with all of its documents.
//
//	@Summary		Delete item
//	@Description	Removes every document of the item (blobs first), then the item.
//	@Tags			items
//	@Param			id	path	int	true	"Item ID"
//	@Success		303	"Redirect to /api/items"
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/items/{id} [delete]
//	@Router			/api/items/{id}/delete [post]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "item deleted", "item_id", id)
	httpx.Redirect(w, r, ItemsPath)
}
