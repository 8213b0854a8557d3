package routes

import (
	"net/http"
	"time"

	"github.com/LovationAdmin/finance-tracker-api/config"
	"github.com/LovationAdmin/finance-tracker-api/handlers"
	"github.com/LovationAdmin/finance-tracker-api/middleware"
	"github.com/LovationAdmin/finance-tracker-api/services"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Deps are the long-lived objects the router hands to its handlers.
type Deps struct {
	Store   *services.TransactionStore
	WS      *handlers.WSHandler
	Limiter *middleware.RateLimiter
}

// NewRouter builds the engine with middleware and every route registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RequestLogger())
	if deps.Limiter != nil {
		router.Use(deps.Limiter.Middleware())
	}

	SetupTransactionRoutes(router, deps.Store, deps.WS)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "healthy",
			"version":      Version,
			"time":         time.Now().Format(time.RFC3339),
			"transactions": deps.Store.Len(),
		})
	})

	if deps.WS != nil {
		router.GET("/ws/transactions", deps.WS.HandleWS)
	}

	router.NoRoute(handlers.NotFound)

	return router
}

// SetupTransactionRoutes sets up the transaction CRUD and summary routes.
func SetupTransactionRoutes(rg gin.IRoutes, store *services.TransactionStore, ws *handlers.WSHandler) {
	h := handlers.NewTransactionHandler(store, ws)

	rg.GET("/transactions", h.ListTransactions)
	rg.POST("/transactions", h.CreateTransaction)
	rg.GET("/transactions/:id", h.GetTransaction)
	rg.PATCH("/transactions/:id", h.UpdateTransaction)
	rg.DELETE("/transactions/:id", h.DeleteTransaction)

	rg.GET("/summary", h.GetSummary)
	rg.GET("/summary/categories", h.GetCategorySummary)

	rg.GET("/categories/suggest", h.SuggestCategory)
}
