package inventory

import (
	"context"

	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
)

// TxRunner transacción con el repositorio de dulces atado a ella.
type TxRunner = repository.TxRunner

// StockReportGenerator genera el reporte de inventario (PDF) a partir del catálogo.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// StockReport datos consolidados del reporte de inventario.
type StockReport struct {
	Title       string
	GeneratedBy string
	Sweets      []*entity.Sweet
}
