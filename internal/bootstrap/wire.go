// Package bootstrap arma los casos de uso y las dependencias del router sobre un backend
// de persistencia (PostgreSQL o memoria).
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Granja-api/internal/application/analytics"
	"github.com/jhoicas/Granja-api/internal/application/auth"
	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/application/finance"
	"github.com/jhoicas/Granja-api/internal/application/inventory"
	"github.com/jhoicas/Granja-api/internal/application/ports"
	"github.com/jhoicas/Granja-api/internal/application/production"
	"github.com/jhoicas/Granja-api/internal/application/usecase"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
	"github.com/jhoicas/Granja-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Granja-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Granja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Granja-api/internal/interfaces/http"
)

// Store backend de persistencia: runner transaccional más los repositorios fuera de transacción.
type Store struct {
	Tx           ports.TxRunner
	Repos        ports.Repos
	Users        repository.UserRepository
	Eggs         repository.EggCollectionRepository
	Weights      repository.WeightRecordRepository
	Health       repository.HealthRecordRepository
	Transactions repository.TransactionRepository
}

// PostgresStore repositorios sobre el pool; las transacciones abren su propio pgx.Tx.
func PostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Tx:           postgres.NewTxRunner(pool),
		Repos:        postgres.NewRepos(pool),
		Users:        postgres.NewUserRepository(pool),
		Eggs:         postgres.NewEggCollectionRepository(pool),
		Weights:      postgres.NewWeightRecordRepository(pool),
		Health:       postgres.NewHealthRecordRepository(pool),
		Transactions: postgres.NewTransactionRepository(pool),
	}
}

// MemoryStore backend en memoria (desarrollo y tests).
func MemoryStore(s *memory.Store) Store {
	return Store{
		Tx:           s,
		Repos:        s.Repos(),
		Users:        s.Users(),
		Eggs:         s.EggCollections(),
		Weights:      s.WeightRecords(),
		Health:       s.HealthRecords(),
		Transactions: s.Transactions(),
	}
}

// Options parámetros transversales del armado.
type Options struct {
	JWT       auth.JWTConfig
	FarmName  string
	RateLimit httpRouter.RateLimitConfig
	Log       zerolog.Logger
	// Metrics nil desactiva la instrumentación.
	Metrics *metrics.Registry
}

// Build construye todos los casos de uso y devuelve las dependencias del router.
func Build(st Store, opt Options) httpRouter.RouterDeps {
	var m ports.Metrics = ports.NopMetrics{}
	if opt.Metrics != nil {
		m = opt.Metrics
	}
	r := st.Repos
	log := opt.Log

	reports := finance.NewReportUseCase(st.Transactions, r.Flocks, r.Batches, st.Eggs)
	deps := httpRouter.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(st.Users, opt.JWT, log.With().Str("component", "auth").Logger()),
		UserUC:        usecase.NewUserUseCase(st.Users),
		SupplierUC:    usecase.NewSupplierUseCase(r.Suppliers),
		FeedUC:        feed.NewUseCase(st.Tx, r, m, log.With().Str("component", "feed").Logger()),
		ItemUC:        inventory.NewItemUseCase(r.InventoryItems, r.Suppliers),
		MovementUC:    inventory.NewRegisterMovementUseCase(st.Tx, r.StockMovements, m, log.With().Str("component", "inventory").Logger()),
		OrderUC:       inventory.NewPurchaseOrderUseCase(st.Tx, r.PurchaseOrders, m, log.With().Str("component", "purchase_orders").Logger()),
		Replenishment: inventory.NewReplenishmentUseCase(r.FeedInventory, r.InventoryItems),
		Production: httpRouter.ProductionUseCases{
			Flocks:    production.NewFlockUseCase(r.Flocks),
			Batches:   production.NewBatchUseCase(r.Batches, r.Flocks),
			Mortality: production.NewMortalityUseCase(st.Tx, r.Mortality, m, log.With().Str("component", "mortality").Logger()),
			Eggs:      production.NewEggUseCase(st.Eggs, r.Flocks, r.Batches),
			Weights:   production.NewWeightUseCase(st.Weights, r.Flocks, r.Batches),
			Health:    production.NewHealthUseCase(st.Health, r.Flocks, r.Batches),
			FCR:       production.NewFCRUseCase(r.Batches, r.FeedConsumption, st.Weights, r.Mortality, m, log.With().Str("component", "fcr").Logger()),
		},
		TransactionUC: finance.NewTransactionUseCase(st.Transactions, r.Flocks, r.Batches),
		ReportUC:      reports,
		ReportPDF:     finance.NewPDFUseCase(reports, infrapdf.NewMarotoReportGenerator(), opt.FarmName),
		DashboardUC: appanalytics.NewDashboardUseCase(appanalytics.DashboardRepos{
			Flocks:         r.Flocks,
			Batches:        r.Batches,
			Eggs:           st.Eggs,
			Mortality:      r.Mortality,
			Transactions:   st.Transactions,
			FeedInventory:  r.FeedInventory,
			InventoryItems: r.InventoryItems,
		}),
		JWTSecret: opt.JWT.Secret,
		RateLimit: opt.RateLimit,
		Log:       log,
	}
	if opt.Metrics != nil {
		deps.Metrics = opt.Metrics
		deps.MetricsHandler = opt.Metrics.Handler()
	}
	return deps
}
