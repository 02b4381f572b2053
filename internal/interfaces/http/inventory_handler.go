package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sweetshop-api/internal/application/dto"
	"github.com/jhoicas/sweetshop-api/internal/application/inventory"
	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/pkg/logger"
)

// InventoryHandler maneja compra, reposición y reporte de stock.
type InventoryHandler struct {
	uc     *inventory.InventoryUseCase
	report *inventory.ReportUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, report *inventory.ReportUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, report: report, log: log.Component("http.inventory")}
}

// Purchase godoc
// @Summary      Comprar una unidad
// @Description  Descuenta exactamente una unidad. El campo quantity del body se ignora.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "ID del dulce"
// @Param        body  body  dto.PurchaseRequest  false  "Opcional"
// @Success      200   {object}  dto.SweetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	id, ok := sweetID(c)
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}
	if len(c.Body()) > 0 {
		var in dto.PurchaseRequest
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
		}
		if in.Quantity != nil && *in.Quantity != 1 {
			h.log.Debug().Str("sweet_id", id).Int("requested", *in.Quantity).Msg("compra siempre descuenta una unidad")
		}
	}
	out, err := h.uc.Purchase(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Reponer stock (solo ADMIN)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del dulce"
// @Param        body  body  dto.RestockRequest  true  "amount (o quantity) > 0"
// @Success      200   {object}  dto.SweetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, ok := sweetID(c)
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.Restock(c.UserContext(), GetUserID(c), id, in.Units())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte de inventario en PDF (solo ADMIN)
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sweets/report.pdf [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.DownloadStockReport(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
