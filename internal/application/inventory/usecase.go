package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/sweetshop-api/internal/application/dto"
	"github.com/jhoicas/sweetshop-api/internal/application/usecase"
	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	stock "github.com/jhoicas/sweetshop-api/internal/domain/inventory"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
	"github.com/jhoicas/sweetshop-api/pkg/logger"
)

// InventoryUseCase compra y reposición de stock. Cada operación corre en una
// transacción con bloqueo de fila (SELECT FOR UPDATE), así dos compras
// concurrentes del mismo dulce se serializan y quantity nunca baja de 0.
type InventoryUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner TxRunner, log *logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, log: log.Component("inventory")}
}

// Purchase descuenta exactamente una unidad.
// ErrNotFound si el dulce no existe, ErrOutOfStock si quantity <= 0.
func (uc *InventoryUseCase) Purchase(ctx context.Context, userID, sweetID string) (*dto.SweetResponse, error) {
	var updated *entity.Sweet
	err := uc.txRunner.Run(ctx, func(sweetRepo repository.SweetRepository) error {
		sweet, err := lockSweet(ctx, sweetRepo, sweetID)
		if err != nil {
			return err
		}
		remaining, err := stock.Purchase(sweet.Quantity)
		if err != nil {
			return err
		}
		sweet.Quantity = remaining
		sweet.UpdatedAt = time.Now()
		if err := sweetRepo.UpdateQuantity(ctx, sweet.ID, sweet.Quantity, sweet.UpdatedAt); err != nil {
			return err
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sweet_id", updated.ID).
		Str("user_id", userID).
		Int("quantity", updated.Quantity).
		Msg("compra registrada")
	return usecase.ToSweetResponse(updated), nil
}

// Restock suma amount unidades. amount debe ser positivo.
func (uc *InventoryUseCase) Restock(ctx context.Context, userID, sweetID string, amount int) (*dto.SweetResponse, error) {
	if _, err := stock.Restock(0, amount); err != nil {
		return nil, err
	}
	var updated *entity.Sweet
	err := uc.txRunner.Run(ctx, func(sweetRepo repository.SweetRepository) error {
		sweet, err := lockSweet(ctx, sweetRepo, sweetID)
		if err != nil {
			return err
		}
		total, err := stock.Restock(sweet.Quantity, amount)
		if err != nil {
			return err
		}
		sweet.Quantity = total
		sweet.UpdatedAt = time.Now()
		if err := sweetRepo.UpdateQuantity(ctx, sweet.ID, sweet.Quantity, sweet.UpdatedAt); err != nil {
			return err
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sweet_id", updated.ID).
		Str("user_id", userID).
		Int("amount", amount).
		Int("quantity", updated.Quantity).
		Msg("reposición registrada")
	return usecase.ToSweetResponse(updated), nil
}

func lockSweet(ctx context.Context, sweetRepo repository.SweetRepository, id string) (*entity.Sweet, error) {
	sweet, err := sweetRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, domain.ErrNotFound
	}
	return sweet, nil
}
