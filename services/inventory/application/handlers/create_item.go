package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// CreateItemHandler handles POST /api/items.
type CreateItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewCreateItemHandler(svc *appsvcs.Services, log logger.Logger) *CreateItemHandler {
	return &CreateItemHandler{svc: svc, log: log}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an item. Code, description, and location are stored uppercase.
//	@Tags			items
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	ItemRequest	true	"Item fields"
//	@Success		303		"Redirect to /api/items"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/items [post]
func (h *CreateItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "item created", "item_id", item.ID)
	httpx.Redirect(w, r, ItemsPath)
}
