package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemsPath is the item list; most write operations redirect back to it.
const ItemsPath = "/api/items"

// ItemRequest is the body for creating or replacing an item. It is accepted
// as JSON or as an urlencoded form.
type ItemRequest struct {
	Code        string          `json:"code"        example:"ab1"`
	Description string          `json:"description" example:"widget"`
	Quantity    QuantityLiteral `json:"quantity"    example:"5" swaggertype:"string"`
	Location    string          `json:"location"    example:"bin1"`
} // @name ItemRequest

func (r *ItemRequest) input() models.ItemInput {
	return models.ItemInput{
		Code:        r.Code,
		Description: r.Description,
		Quantity:    string(r.Quantity),
		Location:    r.Location,
	}
}

// QuantityLiteral keeps the quantity exactly as submitted so the domain can
// reject anything that is not a plain non-negative integer. Both "5" and 5
// decode to the literal 5.
type QuantityLiteral string

func (q *QuantityLiteral) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuantityLiteral(s)
		return nil
	}
	*q = QuantityLiteral(data)
	return nil
}

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID          int64  `json:"id"          example:"1"`
	Code        string `json:"code"        example:"AB1"`
	Description string `json:"description" example:"WIDGET"`
	Quantity    int64  `json:"quantity"    example:"5"`
	Location    string `json:"location"    example:"BIN1"`
} // @name ItemResponse

// DocumentResponse is the JSON representation of a document attachment.
type DocumentResponse struct {
	ID          int64  `json:"id"           example:"3"`
	ItemID      int64  `json:"item_id"      example:"1"`
	DisplayName string `json:"display_name" example:"report.pdf"`
	URL         string `json:"url"          example:"/uploads/report.pdf"`
} // @name DocumentResponse

// ItemDetailResponse is an item with its documents.
type ItemDetailResponse struct {
	ItemResponse
	Documents []DocumentResponse `json:"documents"`
} // @name ItemDetailResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error  string            `json:"error"            example:"invalid item"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
	}
}

func toDocumentResponse(doc *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		ItemID:      doc.ItemID,
		DisplayName: doc.DisplayName,
		URL:         UploadsPath + doc.StoredName,
	}
}

func itemPath(id int64) string {
	return ItemsPath + "/" + strconv.FormatInt(id, 10)
}

// pathID parses the {name} URL parameter. Routes constrain it to digits, so a
// failure only happens on overflow and is reported as notFound.
// pathID parses the {id} route parameter and tags the request's error
// reports with it under tag.
func pathID(r *http.Request, tag string, notFound error) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	telemetry.SentryTag(r.Context(), tag, raw)
	return id, nil
}

func itemID(r *http.Request) (int64, error) {
	return pathID(r, "item_id", domain.ErrItemNotFound)
}

// writeError logs server-side failures before handing err to errhttp.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if errhttp.Status(err) >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	errhttp.WriteError(w, r, err)
}
