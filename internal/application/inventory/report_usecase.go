package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF del inventario actual.
type ReportUseCase struct {
	sweetRepo repository.SweetRepository
	generator StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(sweetRepo repository.SweetRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{sweetRepo: sweetRepo, generator: generator}
}

// DownloadStockReport devuelve los bytes del PDF y un nombre de archivo con la fecha.
func (uc *ReportUseCase) DownloadStockReport(ctx context.Context, requestedBy string) (pdfBytes []byte, filename string, err error) {
	sweets, err := uc.sweetRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar dulces: %w", err)
	}
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, StockReport{
		Title:       "Reporte de inventario",
		GeneratedBy: requestedBy,
		Sweets:      sweets,
	})
	if err != nil {
		return nil, "", err
	}
	filename = fmt.Sprintf("inventario-%s.pdf", time.Now().Format("2006-01-02"))
	return pdfBytes, filename, nil
}
