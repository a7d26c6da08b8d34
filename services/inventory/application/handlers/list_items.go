package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// ListItemsHandler handles GET /api/items.
type ListItemsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewListItemsHandler(svc *appsvcs.Services, log logger.Logger) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, log: log}
}

// Execute lists items, optionally filtered.
//
//	@Summary		List items
//	@Description	Lists every item in id order. With filter, only items whose code, description, or location contains it (ignoring case).
//	@Tags			items
//	@Produce		json
//	@Param			filter	query		string	false	"Case-insensitive substring"
//	@Success		200		{array}		ItemResponse
//	@Router			/api/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, out)
}
