package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Granja-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// Las filas de stock se serializan con SELECT ... FOR UPDATE desde los repos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye el juego de repositorios sobre q (pool o tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		FeedInventory:   NewFeedInventoryRepository(q),
		FeedPurchases:   NewFeedPurchaseRepository(q),
		FeedConsumption: NewFeedConsumptionRepository(q),
		InventoryItems:  NewInventoryItemRepository(q),
		StockMovements:  NewStockMovementRepository(q),
		PurchaseOrders:  NewPurchaseOrderRepository(q),
		Suppliers:       NewSupplierRepository(q),
		Flocks:          NewFlockRepository(q),
		Batches:         NewBatchRepository(q),
		Mortality:       NewMortalityRepository(q),
	}
}
