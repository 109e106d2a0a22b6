package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acopio-api/internal/application/auth"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
	"github.com/jhoicas/Acopio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CommodityTypeUC *usecase.CommodityTypeUseCase
	TraderUC        *usecase.TraderUseCase
	PurchaseUC      *usecase.PurchaseUseCase
	SummaryUC       *usecase.SummaryUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo de tipos de producto
	types := protected.Group("/commodity-types")
	typeHandler := NewCommodityTypeHandler(deps.CommodityTypeUC)
	types.Get("/all/by-depot", adminOnly, typeHandler.ListGrouped)
	types.Post("/", typeHandler.Create)
	types.Get("/depot/:depotId", typeHandler.List)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", typeHandler.Update)
	types.Delete("/:id", typeHandler.Delete)

	// Comerciantes
	traders := protected.Group("/traders")
	traderHandler := NewTraderHandler(deps.TraderUC)
	traders.Get("/all/by-depot", adminOnly, traderHandler.ListGrouped)
	traders.Post("/", traderHandler.Create)
	traders.Get("/depot/:depotId", traderHandler.List)
	traders.Get("/:id", traderHandler.GetByID)
	traders.Put("/:id", traderHandler.Update)
	traders.Delete("/:id", traderHandler.Delete)

	// Libro de compras
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/all/by-depot", adminOnly, purchaseHandler.ListGrouped)
	purchases.Post("/depot/:depotId", purchaseHandler.Create)
	purchases.Get("/depot/:depotId", purchaseHandler.List)
	purchases.Get("/depot/:depotId/trader/:traderId", purchaseHandler.ListByTrader)
	purchases.Get("/depot/:depotId/date/:date", purchaseHandler.ListByDate)
	purchases.Get("/depot/:depotId/month/:month/year/:year", purchaseHandler.ListByMonth)
	purchases.Get("/depot/:depotId/year/:year", purchaseHandler.ListByYear)
	purchases.Get("/depot/:depotId/:id", purchaseHandler.GetByID)
	purchases.Put("/depot/:depotId/:id", purchaseHandler.Update)
	purchases.Delete("/depot/:depotId/:id", purchaseHandler.Delete)

	// Cierres de jornada
	summaries := protected.Group("/summaries")
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	summaries.Get("/all", adminOnly, summaryHandler.ListAll)
	summaries.Get("/date/:date", adminOnly, summaryHandler.ListByDate)
	summaries.Post("/depot/:depotId/today", summaryHandler.Create)
	summaries.Get("/depot/:depotId/today", summaryHandler.Get)
	summaries.Get("/depot/:depotId", summaryHandler.List)
	summaries.Delete("/depot/:depotId/:id", summaryHandler.Delete)
}
