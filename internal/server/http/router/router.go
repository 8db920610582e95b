package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/server/http/handlers"
	"github.com/threadcart/backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, parser middleware.TokenParser, admins middleware.AdminResolver, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	orderAdminHandler := handlers.NewOrderAdminHandler(facade)
	userAdminHandler := handlers.NewUserAdminHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Signup)
	user.POST("/login", authHandler.Login)
	user.POST("/verify-email", authHandler.VerifyEmail)
	user.POST("/resend-code", authHandler.ResendCode)
	user.POST("/forgot-password", authHandler.ForgotPassword)
	user.POST("/reset-password", authHandler.ResetPassword)

	userAuth := user.Group("")
	userAuth.Use(middleware.UserAuthRequired(parser))
	userAuth.GET("/cart", cartHandler.Get)
	userAuth.POST("/cart/add", cartHandler.Add)
	userAuth.POST("/cart/remove", cartHandler.Remove)

	products := api.Group("/products")
	products.GET("", productHandler.All)
	products.GET("/new-collection", productHandler.NewCollection)
	products.GET("/popular-women", productHandler.PopularInWomen)
	products.GET("/related", productHandler.Related)

	payment := api.Group("/payment")
	payment.Use(middleware.UserAuthRequired(parser))
	payment.POST("/create-order", paymentHandler.CreateOrder)
	payment.POST("/verify", paymentHandler.Verify)
	payment.POST("/confirm", paymentHandler.Confirm)

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminAuthRequired(parser, admins))

	adminOrders := adminAuth.Group("/orders")
	adminOrders.Use(middleware.RequirePermission(model.PermissionManageOrders))
	adminOrders.GET("", orderAdminHandler.List)
	adminOrders.GET("/stats", orderAdminHandler.Stats)
	adminOrders.GET("/:id", orderAdminHandler.Get)
	adminOrders.PUT("/:id/status", orderAdminHandler.UpdateStatus)
	adminOrders.DELETE("/:id", orderAdminHandler.Delete)

	adminProducts := adminAuth.Group("/products")
	adminProducts.Use(middleware.RequirePermission(model.PermissionManageProducts))
	adminProducts.GET("", productHandler.All)
	adminProducts.GET("/:id", productHandler.Get)
	adminProducts.POST("", productHandler.Add)
	adminProducts.PUT("/:id", productHandler.Update)
	adminProducts.DELETE("/:id", productHandler.Remove)

	adminUsers := adminAuth.Group("/users")
	adminUsers.Use(middleware.RequirePermission(model.PermissionManageUsers))
	adminUsers.GET("", userAdminHandler.List)
	adminUsers.GET("/stats", userAdminHandler.Stats)
	adminUsers.GET("/:id", userAdminHandler.Get)
	adminUsers.PATCH("/:id", userAdminHandler.UpdateFlags)
	adminUsers.DELETE("/:id", userAdminHandler.Delete)
	adminUsers.POST("/register", authHandler.AdminRegister)

	return engine
}
