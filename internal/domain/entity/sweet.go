package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sweet representa un dulce del catálogo. Quantity nunca es negativa.
type Sweet struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock indica si queda al menos una unidad.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}

// StockValue precio * cantidad disponible.
func (s *Sweet) StockValue() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SweetFilter criterios de búsqueda; los campos nil no filtran. Se combinan con AND.
type SweetFilter struct {
	Name     *string          // substring, sin distinguir mayúsculas
	Category *string          // igualdad exacta
	MinPrice *decimal.Decimal // inclusivo
	MaxPrice *decimal.Decimal // inclusivo
	InStock  bool             // solo quantity > 0
}
