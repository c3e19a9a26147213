package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jdruizm/Botica-api/internal/domain/inventory"
)

// TestWeightedAverageCost_PromedioBasico verifica el caso típico: 100 unidades
// a $10 más 50 unidades a $16 deben promediar $12.
func TestWeightedAverageCost_PromedioBasico(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(16),
	)
	assert.True(t, decimal.NewFromInt(12).Equal(got),
		"promedio ponderado esperado 12, obtenido %s", got)
}

// TestWeightedAverageCost_SinStockPrevio verifica que con stock cero el costo
// nuevo es exactamente el costo de la entrada.
func TestWeightedAverageCost_SinStockPrevio(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(30), decimal.RequireFromString("7.50"),
	)
	assert.True(t, decimal.RequireFromString("7.50").Equal(got),
		"sin stock previo el costo debe ser el de la entrada, obtenido %s", got)
}

// TestWeightedAverageCost_TotalNoPositivo verifica que una suma de cantidades
// no positiva devuelve cero en lugar de dividir.
func TestWeightedAverageCost_TotalNoPositivo(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.Zero, decimal.NewFromInt(10),
		decimal.Zero, decimal.NewFromInt(16),
	)
	assert.True(t, got.IsZero(), "con cantidades cero el costo debe ser cero")
}

// TestWeightedAverageCost_CantidadesFraccionarias verifica el promedio con
// cantidades decimales (jarabes vendidos por fracción).
func TestWeightedAverageCost_CantidadesFraccionarias(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.RequireFromString("2.5"), decimal.NewFromInt(8),
		decimal.RequireFromString("7.5"), decimal.NewFromInt(12),
	)
	assert.True(t, decimal.NewFromInt(11).Equal(got),
		"promedio esperado 11, obtenido %s", got)
}
