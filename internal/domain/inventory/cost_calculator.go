package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado
// (servicio de dominio). Se aplica en cada entrada de stock:
//
//	NuevoCosto = ((qtyActual * costoActual) + (qtyEntrada * costoEntrada)) / (qtyActual + qtyEntrada)
//
// Si la suma de cantidades no es positiva devuelve cero en lugar de dividir.
func WeightedAverageCost(onHandQty, onHandCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	total := onHandQty.Add(inQty)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	value := onHandQty.Mul(onHandCost).Add(inQty.Mul(inCost))
	return value.Div(total)
}
