package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción SQL;
// Commit si fn devuelve nil, Rollback en caso contrario. Lo usa el borrado de
// producto para que movimientos y producto caigan juntos o no caiga ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
