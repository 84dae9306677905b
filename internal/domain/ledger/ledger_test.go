package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

func mov(productID, typ string, qty int) *entity.StockMovement {
	return &entity.StockMovement{ProductID: productID, Type: typ, Quantity: qty}
}

// Secuencia vacía pliega a 0.
func TestFold_SecuenciaVacia(t *testing.T) {
	assert.Equal(t, 0, ledger.Fold(nil))
	assert.Equal(t, 0, ledger.Fold([]*entity.StockMovement{}))
}

// IN suma, OUT resta: [IN 10, OUT 3] => 7.
func TestFold_EntradaMenosSalida(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 10),
		mov("p1", entity.MovementTypeOut, 3),
	}
	assert.Equal(t, 7, ledger.Fold(movs))
}

// El resultado puede ser negativo: el libro no impone stock >= 0.
func TestFold_PuedeSerNegativo(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 2),
		mov("p1", entity.MovementTypeOut, 5),
	}
	assert.Equal(t, -3, ledger.Fold(movs))
}

// La suma es conmutativa: cualquier permutación pliega al mismo total.
func TestFold_Conmutatividad(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 20),
		mov("p1", entity.MovementTypeOut, 15),
		mov("p1", entity.MovementTypeIn, 7),
		mov("p1", entity.MovementTypeOut, 1),
		mov("p1", entity.MovementTypeIn, 3),
	}
	want := ledger.Fold(movs)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]*entity.StockMovement, len(movs))
		copy(shuffled, movs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, ledger.Fold(shuffled))
	}
}

// Quitar un movimiento equivale a plegar el resto: no hay deriva.
func TestFold_SinDerivaTrasBorrado(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 10),
		mov("p1", entity.MovementTypeOut, 4),
		mov("p1", entity.MovementTypeIn, 6),
	}
	assert.Equal(t, 12, ledger.Fold(movs))

	remaining := []*entity.StockMovement{movs[0], movs[2]}
	assert.Equal(t, 16, ledger.Fold(remaining))
}

func TestFoldByProduct(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 10),
		mov("p2", entity.MovementTypeIn, 5),
		mov("p1", entity.MovementTypeOut, 3),
		mov("p2", entity.MovementTypeOut, 5),
	}
	totals := ledger.FoldByProduct(movs)
	assert.Equal(t, 7, totals["p1"])
	assert.Equal(t, 0, totals["p2"])
	_, ok := totals["p3"]
	assert.False(t, ok, "producto sin movimientos no aparece en el mapa")
}

// BelowMinimum es estricto: igual al mínimo NO es stock bajo.
func TestBelowMinimum_Frontera(t *testing.T) {
	assert.True(t, ledger.BelowMinimum(4, 5))
	assert.False(t, ledger.BelowMinimum(5, 5))
	assert.False(t, ledger.BelowMinimum(6, 5))
	assert.False(t, ledger.BelowMinimum(0, 0))
}

// Escenario de la guía de reposición: minStock=10, [IN 20, OUT 15] => 5 => bajo.
func TestEscenarioReposicion(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIn, 20),
		mov("p1", entity.MovementTypeOut, 15),
	}
	current := ledger.Fold(movs)
	assert.Equal(t, 5, current)
	assert.True(t, ledger.BelowMinimum(current, 10))
}
