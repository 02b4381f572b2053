package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
)

// SweetRepository define el puerto de persistencia para Sweet (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando no existe; Update, UpdateQuantity
// y Delete devuelven domain.ErrNotFound.
type SweetRepository interface {
	Create(ctx context.Context, sweet *entity.Sweet) error
	GetByID(ctx context.Context, id string) (*entity.Sweet, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sweet, error)
	List(ctx context.Context) ([]*entity.Sweet, error)
	Search(ctx context.Context, filter entity.SweetFilter) ([]*entity.Sweet, error)
	Update(ctx context.Context, sweet *entity.Sweet) error
	// UpdateQuantity fija quantity y updated_at; solo con la fila ya bloqueada.
	UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// TxRunner ejecuta fn dentro de una transacción, con el repositorio atado a ella.
// Toda escritura que parte de una lectura de quantity (compra, reposición,
// actualización parcial) debe pasar por aquí leyendo con GetForUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(sweetRepo SweetRepository) error) error
}
