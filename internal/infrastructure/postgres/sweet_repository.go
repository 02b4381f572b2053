package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
)

var _ repository.SweetRepository = (*SweetRepo)(nil)

const sweetColumns = `id, name, category, price, quantity, image_url, created_at, updated_at`

// SweetRepo implementación del puerto SweetRepository sobre PostgreSQL (usable con pool o tx).
type SweetRepo struct {
	q Querier
}

// NewSweetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSweetRepository(q Querier) *SweetRepo {
	return &SweetRepo{q: q}
}

// Create persiste un nuevo dulce.
func (r *SweetRepo) Create(ctx context.Context, s *entity.Sweet) error {
	query := `
		INSERT INTO sweets (` + sweetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Category, s.Price, s.Quantity, s.ImageURL, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sweet: %w", err)
	}
	return nil
}

// GetByID obtiene un dulce por ID.
func (r *SweetRepo) GetByID(ctx context.Context, id string) (*entity.Sweet, error) {
	return r.findOne(ctx, `SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id)
}

// GetForUpdate obtiene el dulce y bloquea la fila (SELECT FOR UPDATE). Solo tiene sentido dentro de una tx.
func (r *SweetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sweet, error) {
	return r.findOne(ctx, `SELECT `+sweetColumns+` FROM sweets WHERE id = $1 FOR UPDATE`, id)
}

// List devuelve todos los dulces en orden de creación.
func (r *SweetRepo) List(ctx context.Context) ([]*entity.Sweet, error) {
	return r.findMany(ctx, `SELECT `+sweetColumns+` FROM sweets ORDER BY created_at, id`)
}

// Search construye el WHERE con los filtros presentes, combinados con AND.
func (r *SweetRepo) Search(ctx context.Context, f entity.SweetFilter) ([]*entity.Sweet, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Name != nil {
		add(`name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(*f.Name))
	}
	if f.Category != nil {
		add(`category = $%d`, *f.Category)
	}
	if f.MinPrice != nil {
		add(`price >= $%d`, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add(`price <= $%d`, *f.MaxPrice)
	}
	if f.InStock {
		conds = append(conds, `quantity > 0`)
	}

	query := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at, id`
	return r.findMany(ctx, query, args...)
}

// Update reemplaza los campos editables del dulce.
func (r *SweetRepo) Update(ctx context.Context, s *entity.Sweet) error {
	query := `
		UPDATE sweets SET name = $2, category = $3, price = $4, quantity = $5, image_url = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Category, s.Price, s.Quantity, s.ImageURL, s.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update sweet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad (usado por compra/reposición con la fila ya bloqueada).
func (r *SweetRepo) UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sweets SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, updatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrOutOfStock
		}
		return fmt.Errorf("update sweet quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un dulce por ID.
func (r *SweetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SweetRepo) findOne(ctx context.Context, query, id string) (*entity.Sweet, error) {
	var s entity.Sweet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sweet: %w", err)
	}
	return &s, nil
}

func (r *SweetRepo) findMany(ctx context.Context, query string, args ...any) ([]*entity.Sweet, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sweet, 0)
	for rows.Next() {
		var s entity.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sweet: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
