package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sweetshop-api/internal/application/dto"
	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/entity"
	stock "github.com/jhoicas/sweetshop-api/internal/domain/inventory"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// SweetUseCase casos de uso CRUD y búsqueda del catálogo. El stock cambia
// también vía inventory.InventoryUseCase (compra / reposición); Update comparte
// con ella el TxRunner para no pisar una compra concurrente.
type SweetUseCase struct {
	repo     repository.SweetRepository
	txRunner repository.TxRunner
}

// NewSweetUseCase construye el caso de uso.
func NewSweetUseCase(repo repository.SweetRepository, txRunner repository.TxRunner) *SweetUseCase {
	return &SweetUseCase{repo: repo, txRunner: txRunner}
}

// Create valida y persiste un dulce nuevo.
func (uc *SweetUseCase) Create(ctx context.Context, in dto.CreateSweetRequest) (*dto.SweetResponse, error) {
	now := time.Now()
	sweet := &entity.Sweet{
		ID:        uuid.New().String(),
		Name:      normalizeText(in.Name),
		Category:  normalizeText(in.Category),
		Price:     in.Price,
		Quantity:  in.Quantity,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateSweet(sweet); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, sweet); err != nil {
		return nil, err
	}
	return ToSweetResponse(sweet), nil
}

// GetByID obtiene un dulce; ErrNotFound si no existe.
func (uc *SweetUseCase) GetByID(ctx context.Context, id string) (*dto.SweetResponse, error) {
	sweet, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, domain.ErrNotFound
	}
	return ToSweetResponse(sweet), nil
}

// List devuelve todo el catálogo, sin filtros.
func (uc *SweetUseCase) List(ctx context.Context) ([]dto.SweetResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toSweetResponses(list), nil
}

// Search aplica los filtros presentes combinados con AND; los ausentes no filtran.
func (uc *SweetUseCase) Search(ctx context.Context, q dto.SearchSweetsQuery) ([]dto.SweetResponse, error) {
	filter, err := BuildSweetFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toSweetResponses(list), nil
}

// Update aplica una actualización parcial; los campos nil se conservan.
// Lee con la fila bloqueada: la cantidad escrita es la vigente, no una copia vieja.
func (uc *SweetUseCase) Update(ctx context.Context, id string, in dto.UpdateSweetRequest) (*dto.SweetResponse, error) {
	var updated *entity.Sweet
	err := uc.txRunner.Run(ctx, func(sweetRepo repository.SweetRepository) error {
		sweet, err := sweetRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sweet == nil {
			return domain.ErrNotFound
		}
		applyUpdate(sweet, in)
		if err := validateSweet(sweet); err != nil {
			return err
		}
		sweet.UpdatedAt = time.Now()
		if err := sweetRepo.Update(ctx, sweet); err != nil {
			return err
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToSweetResponse(updated), nil
}

func applyUpdate(sweet *entity.Sweet, in dto.UpdateSweetRequest) {
	if in.Name != nil {
		sweet.Name = normalizeText(*in.Name)
	}
	if in.Category != nil {
		sweet.Category = normalizeText(*in.Category)
	}
	if in.Price != nil {
		sweet.Price = *in.Price
	}
	if in.Quantity != nil {
		sweet.Quantity = *in.Quantity
	}
	if in.ImageURL != nil {
		sweet.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
}

// Delete elimina un dulce por ID; ErrNotFound si no existe.
func (uc *SweetUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// BuildSweetFilter traduce los query params a un entity.SweetFilter.
func BuildSweetFilter(q dto.SearchSweetsQuery) (entity.SweetFilter, error) {
	var f entity.SweetFilter
	if name := normalizeText(q.Name); name != "" {
		f.Name = &name
	}
	if category := normalizeText(q.Category); category != "" {
		f.Category = &category
	}
	if s := strings.TrimSpace(q.MinPrice); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("%w: minPrice no es un número", domain.ErrInvalidInput)
		}
		f.MinPrice = &d
	}
	if s := strings.TrimSpace(q.MaxPrice); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("%w: maxPrice no es un número", domain.ErrInvalidInput)
		}
		f.MaxPrice = &d
	}
	f.InStock = q.InStock
	return f, nil
}

func validateSweet(s *entity.Sweet) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case s.Category == "":
		return fmt.Errorf("%w: category es requerido", domain.ErrInvalidInput)
	case !s.Price.IsPositive():
		return fmt.Errorf("%w: price debe ser mayor que 0", domain.ErrInvalidInput)
	case s.Quantity < 0:
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	case s.Quantity > stock.MaxQuantity:
		return fmt.Errorf("%w: quantity no puede superar %d", domain.ErrInvalidInput, stock.MaxQuantity)
	}
	return nil
}

// normalizeText recorta espacios y lleva a NFC para que "Crème" compuesto y
// descompuesto se guarden y busquen igual.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ToSweetResponse convierte la entidad al DTO de salida.
func ToSweetResponse(s *entity.Sweet) *dto.SweetResponse {
	if s == nil {
		return nil
	}
	return &dto.SweetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Quantity:  s.Quantity,
		ImageURL:  s.ImageURL,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSweetResponses(list []*entity.Sweet) []dto.SweetResponse {
	items := make([]dto.SweetResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSweetResponse(s))
	}
	return items
}
