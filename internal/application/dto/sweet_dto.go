package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// El frontend compara price como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateSweetRequest entrada para crear un dulce.
type CreateSweetRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Category string          `json:"category" validate:"required,max=100"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	ImageURL string          `json:"imageUrl"`
}

// UpdateSweetRequest actualización parcial: solo se aplican los campos presentes.
type UpdateSweetRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
	ImageURL *string          `json:"imageUrl"`
}

// SearchSweetsQuery filtros de GET /api/sweets/search (todos opcionales).
type SearchSweetsQuery struct {
	Name     string `query:"name"`
	Category string `query:"category"`
	MinPrice string `query:"minPrice"`
	MaxPrice string `query:"maxPrice"`
	InStock  bool   `query:"inStock"`
}

// PurchaseRequest body opcional de POST /api/sweets/:id/purchase.
// Quantity se acepta pero la compra siempre descuenta una unidad.
type PurchaseRequest struct {
	Quantity *int `json:"quantity"`
}

// RestockRequest body de POST /api/sweets/:id/restock.
// Quantity es el nombre que envía el panel de administración; Amount tiene prioridad.
type RestockRequest struct {
	Amount   *int `json:"amount"`
	Quantity *int `json:"quantity"`
}

// Units devuelve la cantidad a reponer (0 si no vino ninguna).
func (r RestockRequest) Units() int {
	if r.Amount != nil {
		return *r.Amount
	}
	if r.Quantity != nil {
		return *r.Quantity
	}
	return 0
}

// SweetResponse salida de un dulce.
type SweetResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
