// Package ledger implementa el libro de stock como servicio de dominio puro:
// el stock actual de un producto nunca se almacena, se deriva plegando la
// secuencia append-only de sus movimientos. Un contador mutable puede quedar
// desincronizado de la historia tras fallos parciales o escrituras
// concurrentes; el pliegue no.
package ledger

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Fold calcula el stock actual como la suma con signo de los movimientos:
// +Quantity para IN, -Quantity para OUT. La suma es conmutativa, por lo que
// el resultado no depende del orden de la secuencia. Una secuencia vacía
// pliega a 0.
//
// Fold asume entradas válidas (Quantity > 0, tipo conocido): las
// precondiciones se imponen en el append, no aquí.
func Fold(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		if m.Type == entity.MovementTypeIn {
			total += m.Quantity
		} else {
			total -= m.Quantity
		}
	}
	return total
}

// FoldByProduct agrupa los movimientos por producto y pliega cada grupo.
// Un producto sin movimientos simplemente no aparece en el mapa (stock 0).
func FoldByProduct(movements []*entity.StockMovement) map[string]int {
	totals := make(map[string]int)
	for _, m := range movements {
		if m.Type == entity.MovementTypeIn {
			totals[m.ProductID] += m.Quantity
		} else {
			totals[m.ProductID] -= m.Quantity
		}
	}
	return totals
}

// BelowMinimum indica si el stock actual está por debajo del umbral mínimo.
// La comparación es estricta: currentStock == minStock NO es stock bajo.
func BelowMinimum(currentStock, minStock int) bool {
	return currentStock < minStock
}
