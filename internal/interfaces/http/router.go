package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	appanalytics "github.com/jhoicas/Granja-api/internal/application/analytics"
	"github.com/jhoicas/Granja-api/internal/application/auth"
	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/application/finance"
	"github.com/jhoicas/Granja-api/internal/application/inventory"
	"github.com/jhoicas/Granja-api/internal/application/usecase"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	SupplierUC    *usecase.SupplierUseCase
	FeedUC        *feed.UseCase
	ItemUC        *inventory.ItemUseCase
	MovementUC    *inventory.RegisterMovementUseCase
	OrderUC       *inventory.PurchaseOrderUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Production    ProductionUseCases
	TransactionUC *finance.TransactionUseCase
	ReportUC      *finance.ReportUseCase
	ReportPDF     *finance.PDFUseCase
	DashboardUC   *appanalytics.DashboardUseCase

	JWTSecret string
	RateLimit RateLimitConfig
	Log       zerolog.Logger

	// Métricas HTTP; si es nil no se instrumenta ni se expone /metrics.
	Metrics        RequestObserver
	MetricsHandler nethttp.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}
	app.Use(RequestLogger(deps.Log))
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	read := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff, entity.RoleViewer)
	write := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)
	manage := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RateLimit(deps.RateLimit))

	protected.Get("/auth/me", read, authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", read, supplierHandler.List)
	suppliers.Post("/", write, supplierHandler.Create)
	suppliers.Get("/:id", read, supplierHandler.GetByID)
	suppliers.Put("/:id", write, supplierHandler.Update)
	suppliers.Delete("/:id", manage, supplierHandler.Delete)

	// Feed
	feedGroup := protected.Group("/feed")
	feedHandler := NewFeedHandler(deps.FeedUC)
	feedGroup.Get("/inventory", read, feedHandler.ListItems)
	feedGroup.Post("/inventory", write, feedHandler.CreateItem)
	feedGroup.Get("/inventory/:id", read, feedHandler.GetItem)
	feedGroup.Put("/inventory/:id", write, feedHandler.UpdateItem)
	feedGroup.Delete("/inventory/:id", manage, feedHandler.DeleteItem)
	feedGroup.Get("/purchases", read, feedHandler.ListPurchases)
	feedGroup.Post("/purchases", write, feedHandler.RecordPurchase)
	feedGroup.Put("/purchases", write, feedHandler.UpdatePurchase)
	feedGroup.Delete("/purchases", manage, feedHandler.DeletePurchase)
	feedGroup.Get("/consumption", read, feedHandler.ListConsumption)
	feedGroup.Post("/consumption", write, feedHandler.RecordConsumption)
	feedGroup.Delete("/consumption", manage, feedHandler.DeleteConsumption)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.MovementUC, deps.OrderUC, deps.Replenishment)
	invGroup.Get("/items", read, inventoryHandler.ListItems)
	invGroup.Post("/items", write, inventoryHandler.CreateItem)
	invGroup.Get("/items/:id", read, inventoryHandler.GetItem)
	invGroup.Put("/items/:id", write, inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", manage, inventoryHandler.DeleteItem)
	invGroup.Get("/stock-movements", read, inventoryHandler.ListMovements)
	invGroup.Post("/stock-movements", write, inventoryHandler.RegisterMovement)
	invGroup.Delete("/stock-movements", manage, inventoryHandler.DeleteMovement)
	invGroup.Get("/purchase-orders", read, inventoryHandler.ListOrders)
	invGroup.Post("/purchase-orders", write, inventoryHandler.CreateOrder)
	invGroup.Put("/purchase-orders", manage, inventoryHandler.UpdateOrderStatus)
	invGroup.Delete("/purchase-orders", manage, inventoryHandler.DeleteOrder)
	invGroup.Get("/purchase-orders/:id", read, inventoryHandler.GetOrder)
	invGroup.Get("/low-stock", read, inventoryHandler.GetLowStock)

	// Production
	prod := NewProductionHandler(deps.Production)
	protected.Get("/flocks", read, prod.ListFlocks)
	protected.Post("/flocks", write, prod.CreateFlock)
	protected.Get("/flocks/:id", read, prod.GetFlock)
	protected.Put("/flocks/:id", write, prod.UpdateFlock)
	protected.Delete("/flocks/:id", manage, prod.DeleteFlock)
	protected.Get("/batches", read, prod.ListBatches)
	protected.Post("/batches", write, prod.CreateBatch)
	protected.Get("/batches/:id", read, prod.GetBatch)
	protected.Put("/batches/:id", write, prod.UpdateBatch)
	protected.Delete("/batches/:id", manage, prod.DeleteBatch)
	protected.Get("/mortality", read, prod.ListMortality)
	protected.Post("/mortality", write, prod.RecordMortality)
	protected.Delete("/mortality", manage, prod.DeleteMortality)
	protected.Get("/egg-collection", read, prod.ListEggs)
	protected.Post("/egg-collection", write, prod.RecordEggs)
	protected.Delete("/egg-collection", manage, prod.DeleteEggs)
	protected.Get("/weight-tracking", read, prod.ListWeights)
	protected.Post("/weight-tracking", write, prod.RecordWeight)
	protected.Delete("/weight-tracking", manage, prod.DeleteWeight)
	protected.Get("/health/records", read, prod.ListHealth)
	protected.Post("/health/records", write, prod.RecordHealth)
	protected.Delete("/health/records", manage, prod.DeleteHealth)
	protected.Get("/fcr", read, prod.GetFCR)

	// Finance
	fin := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.TransactionUC, deps.ReportUC, deps.ReportPDF)
	for path, kind := range map[string]string{"/income": entity.TxKindIncome, "/expense": entity.TxKindExpense} {
		fin.Get(path, read, financeHandler.List(kind))
		fin.Post(path, write, financeHandler.Create(kind))
		fin.Put(path, write, financeHandler.Update(kind))
		fin.Delete(path, manage, financeHandler.Delete(kind))
		fin.Get(path+"/:id", read, financeHandler.Get(kind))
	}
	fin.Get("/reports", read, financeHandler.GetReport)
	fin.Get("/reports/pdf", read, financeHandler.DownloadReportPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", read, dashboardHandler.GetSummary)
}
