package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sweetshop-api/internal/domain"
	"github.com/jhoicas/sweetshop-api/internal/domain/inventory"
)

func TestPurchase(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		want     int
		wantErr  error
	}{
		{"con stock", 50, 49, nil},
		{"última unidad", 1, 0, nil},
		{"agotado", 0, 0, domain.ErrOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.Purchase(tc.quantity)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRestock(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		amount   int
		want     int
		wantErr  error
	}{
		{"suma", 49, 10, 59, nil},
		{"desde cero", 0, 5, 5, nil},
		{"justo al máximo", 50, inventory.MaxQuantity - 50, inventory.MaxQuantity, nil},
		{"amount cero", 5, 0, 5, domain.ErrInvalidInput},
		{"amount negativo", 5, -1, 5, domain.ErrInvalidInput},
		{"supera el máximo por uno", 50, inventory.MaxQuantity - 49, 50, domain.ErrInvalidInput},
		{"amount MaxInt32", 50, math.MaxInt32, 50, domain.ErrInvalidInput},
		{"amount MaxInt", 50, math.MaxInt, 50, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.Restock(tc.quantity, tc.amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got, "la cantidad no cambia si amount es inválido")
		})
	}
}
