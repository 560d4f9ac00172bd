// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panjabighar/panjabi-backend/internal/config"
	"github.com/panjabighar/panjabi-backend/internal/handlers"
	"github.com/panjabighar/panjabi-backend/internal/middleware"
	"github.com/panjabighar/panjabi-backend/internal/notify"
	"github.com/panjabighar/panjabi-backend/internal/services"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, mailer *notify.Mailer) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db, productService, mailer)
	storageService, _ := services.NewStorageService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, userService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	authed := middleware.AuthRequired()
	admin := middleware.AdminRequired(db)
	seller := middleware.SellerRequired(db)

	// Root banner and health check
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "My Panjabi Server is Running!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Token lifecycle
	r.POST("/jwt", middleware.TokenRateLimit(), authHandler.IssueToken)
	r.GET("/logout", authHandler.Logout)

	// Users
	r.POST("/users/:email", userHandler.Upsert)
	r.PATCH("/users/:email", authed, userHandler.RequestElevation)
	r.GET("/users/role/:email", userHandler.GetRole)
	r.GET("/all-users/:email", authed, admin, userHandler.ListOthers)
	r.PATCH("/user/role/:email", authed, admin, userHandler.ResolveElevation)

	// Catalog
	r.GET("/panjabi", productHandler.List)
	r.GET("/panjabi/:id", productHandler.Get)
	r.GET("/panjabi/seller", authed, seller, productHandler.ListOwn)
	r.POST("/panjabi", authed, seller, productHandler.Create)
	r.PUT("/panjabi/:id", authed, seller, productHandler.Update)
	r.DELETE("/panjabi/:id", authed, seller, productHandler.Delete)
	r.PATCH("/panjabi/quantity/:id", authed, productHandler.AdjustQuantity)
	r.POST("/panjabi/upload-url", authed, seller, productHandler.UploadURL)

	// Purchases
	r.POST("/purchases", authed, orderHandler.Place)
	r.GET("/customer-purchase/:email", authed, orderHandler.ListForCustomer)
	r.GET("/seller-purchase/:email", authed, seller, orderHandler.ListForSeller)
	r.PATCH("/update-order-status/:id", authed, seller, orderHandler.UpdateStatus)
	r.DELETE("/purchases/:id", authed, orderHandler.Cancel)

	return r
}
