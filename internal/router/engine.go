package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vitrinacl/storefront-api/pkg/global"
)

var Router *gin.Engine

func InitEngine() {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.Default()

	origins := strings.Split(global.GetEnvOrDefault(
		"CORS_ORIGINS",
		"http://localhost:3000,http://localhost:5173",
	), ",")

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", Register)
			auth.POST("/login", Login)
			auth.POST("/refresh", RefreshTokens)

			account := auth.Group("")
			account.Use(RequireAuth())
			{
				account.GET("/profile", GetProfile)
				account.POST("/change-password", ChangePassword)
			}
		}

		productos := api.Group("/productos")
		{
			productos.GET("", GetAllProducts)
			productos.GET("/:id", GetProductByID)
		}
		api.GET("/categorias", GetCategories)

		cart := api.Group("/cart")
		{
			cart.GET("/:sessionId", GetCart)
			cart.POST("/:sessionId/items", AddToCart)
			cart.PUT("/:sessionId/items/:productId", UpdateCartItem)
			cart.DELETE("/:sessionId/items/:productId", RemoveFromCart)
			cart.DELETE("/:sessionId", ClearCart)
		}

		webpay := api.Group("/webpay")
		{
			webpay.POST("/create/:sessionId", CreatePayment)
			webpay.GET("/return/:sessionId", PaymentReturn)
		}

		pedidos := api.Group("/pedidos")
		pedidos.Use(RequireAuth())
		{
			pedidos.GET("", GetMyOrders)
			pedidos.GET("/:orderNumber", GetOrderByNumber)
			pedidos.POST("/:orderNumber/receipt", SendReceipt)
		}

		chat := api.Group("/chat")
		{
			chat.POST("/message", ChatMessage)
		}

		api.GET("/config", GetStoreConfig)

		admin := api.Group("/admin")
		admin.Use(RequireAuth(), RequireAdmin())
		{
			admin.POST("/productos", CreateProducts)
			admin.PUT("/productos/:id", UpdateProduct)
			admin.DELETE("/productos/:id", DeleteProduct)
			admin.POST("/productos/:id/imagenes", AddProductImages)
			admin.DELETE("/imagenes/:imageId", DeleteProductImage)

			admin.GET("/pedidos", GetAllOrders)
			admin.GET("/pedidos/:orderNumber", GetOrderByNumber)
			admin.PUT("/pedidos/:orderNumber/status", UpdateOrderStatus)

			admin.GET("/tickets", GetAllTickets)
			admin.GET("/tickets/:ticketNumber", GetTicketByNumber)
			admin.PUT("/tickets/:ticketNumber/status", UpdateTicketStatus)
			admin.PUT("/tickets/:ticketNumber/notas", UpdateTicketNotes)
			admin.DELETE("/tickets/:ticketNumber", DeleteTicket)

			admin.PUT("/config", UpdateStoreConfig)

			analytics := admin.Group("/analytics")
			{
				analytics.GET("/sales", GetSalesAnalytics)
				analytics.GET("/top-products", GetTopProducts)
				analytics.GET("/inventory", GetInventoryAnalytics)

				aiAnalytics := analytics.Group("/ai")
				{
					aiAnalytics.GET("/sales-report", GenerateAISalesReport)
					aiAnalytics.GET("/inventory-report", GenerateAIInventoryReport)
					aiAnalytics.GET("/product-analysis", GenerateAIProductAnalysis)
				}
			}
		}
	}
}
