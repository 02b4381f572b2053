// Package memory implementa los repositorios en memoria. Sirve para tests y
// para levantar la API sin PostgreSQL (DB_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
)

var (
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.SweetRepository = (*SweetRepo)(nil)
	_ repository.TxRunner        = (*TxRunner)(nil)
)

// UserRepo repositorio de usuarios en memoria. El email es único.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.User
	email map[string]string
}

// NewUserRepository construye un repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: map[string]*entity.User{}, email: map[string]string{}}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.email[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.email[u.Email] = u.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.email[email]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

// SweetRepo repositorio de dulces en memoria; conserva el orden de alta.
type SweetRepo struct {
	mu     sync.RWMutex
	sweets map[string]*entity.Sweet
	seq    map[string]int
	next   int
}

// NewSweetRepository construye un repositorio vacío.
func NewSweetRepository() *SweetRepo {
	return &SweetRepo{sweets: map[string]*entity.Sweet{}, seq: map[string]int{}}
}

func (r *SweetRepo) Create(_ context.Context, s *entity.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sweets[s.ID] = &cp
	r.seq[s.ID] = r.next
	r.next++
	return nil
}

func (r *SweetRepo) GetByID(_ context.Context, id string) (*entity.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// GetForUpdate equivale a GetByID; el bloqueo lo da TxRunner.
func (r *SweetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sweet, error) {
	return r.GetByID(ctx, id)
}

func (r *SweetRepo) List(ctx context.Context) ([]*entity.Sweet, error) {
	return r.Search(ctx, entity.SweetFilter{})
}

func (r *SweetRepo) Search(_ context.Context, f entity.SweetFilter) ([]*entity.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		if matches(s, f) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] < r.seq[out[j].ID] })
	return out, nil
}

func matches(s *entity.Sweet, f entity.SweetFilter) bool {
	if f.Name != nil && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(*f.Name)) {
		return false
	}
	if f.Category != nil && s.Category != *f.Category {
		return false
	}
	if f.MinPrice != nil && s.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && s.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock && !s.InStock() {
		return false
	}
	return true
}

func (r *SweetRepo) Update(_ context.Context, s *entity.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.sweets[s.ID] = &cp
	return nil
}

func (r *SweetRepo) UpdateQuantity(_ context.Context, id string, quantity int, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrOutOfStock
	}
	s.Quantity = quantity
	s.UpdatedAt = updatedAt
	return nil
}

func (r *SweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sweets, id)
	delete(r.seq, id)
	return nil
}

// TxRunner serializa las operaciones de inventario con un mutex global, el
// equivalente en memoria del SELECT FOR UPDATE. No hay rollback: las reglas
// validan antes de escribir.
type TxRunner struct {
	mu   sync.Mutex
	repo repository.SweetRepository
}

// NewTxRunner construye el runner sobre repo. Todas las escrituras que
// dependen de quantity deben compartir el mismo runner.
func NewTxRunner(repo repository.SweetRepository) *TxRunner {
	return &TxRunner{repo: repo}
}

func (t *TxRunner) Run(_ context.Context, fn func(sweetRepo repository.SweetRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.repo)
}
