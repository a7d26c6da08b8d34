package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// UpdateItemHandler handles PUT and POST /api/items/{id}.
type UpdateItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

func NewUpdateItemHandler(svc *appsvcs.Services, log logger.Logger) *UpdateItemHandler {
	return &UpdateItemHandler{svc: svc, log: log}
}

// Execute replaces every field of an item. Nothing changes unless all fields
// are valid.
//
//	@Summary		Update item
//	@Tags			items
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			id		path	int			true	"Item ID"
//	@Param			request	body	ItemRequest	true	"Item fields"
//	@Success		303		"Redirect to /api/items"
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/items/{id} [put]
//	@Router			/api/items/{id} [post]
func (h *UpdateItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Item.Update(r.Context(), id, req.input()); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "item updated", "item_id", id)
	httpx.Redirect(w, r, ItemsPath)
}
