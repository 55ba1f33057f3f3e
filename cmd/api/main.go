package main

import (
	stdlog "log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/st4l1nR/nike-api/internal/auth"
	"github.com/st4l1nR/nike-api/internal/cart"
	"github.com/st4l1nR/nike-api/internal/catalog"
	"github.com/st4l1nR/nike-api/internal/categories"
	"github.com/st4l1nR/nike-api/internal/config"
	"github.com/st4l1nR/nike-api/internal/db"
	"github.com/st4l1nR/nike-api/internal/gql"
	"github.com/st4l1nR/nike-api/internal/logger"
	"github.com/st4l1nR/nike-api/internal/payment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = log.Sync() }()

	pool, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	// Repos
	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)

	h := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
	})

	// Catalog repos/handlers
	catRepo := categories.NewRepo(pool)
	catHandler := categories.NewHandler(catRepo)

	catalogRepo := catalog.NewRepo(pool)
	catalogSvc := catalog.NewService(catalogRepo, log)
	catalogHandler := catalog.NewHandler(catalogRepo, catalogSvc)

	cartRepo := cart.NewRepo(pool)
	cartSvc := cart.NewService(cartRepo, log)

	stripeClient, err := payment.NewStripeClient(payment.StripeConfig{SecretKey: cfg.StripeSecretKey}, log)
	if err != nil {
		log.Fatal("failed to configure stripe", zap.Error(err))
	}

	schema := gql.MustSchema(gql.NewResolver(cartSvc, stripeClient, cfg.PaymentCurrency))

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log), gin.Recovery())

	// Cart and payment mutations are unauthenticated on purpose: any caller
	// holding a cart id may mutate it.
	r.POST("/graphql", gql.Handler(schema))

	api := r.Group("/api")
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}

	// Public catalog routes (no login required)
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/products", catalogHandler.ListPublic)
	api.GET("/products/:id", catalogHandler.GetPublic)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", h.Me)

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole("admin"))

		// admin category CRUD
		adminOnly.GET("/categories", catHandler.AdminList)
		adminOnly.POST("/categories", catHandler.AdminCreate)
		adminOnly.PATCH("/categories/:id", catHandler.AdminUpdate)

		// admin product + variant generation
		adminOnly.POST("/products", catalogHandler.AdminCreate)
		adminOnly.POST("/products/:id/variants", catalogHandler.GenerateVariants)
	}

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
