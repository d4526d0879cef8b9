package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/analytics"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/config"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/handlers"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAnalyticsIndexes(db); err != nil {
		log.Printf("analytics index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	// Redis only backs tracking dedup; the app runs without it.
	var rdb *redis.Client
	if config.AppEnv.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("redis unavailable, tracking dedup disabled: %v", err)
			rdb = nil
		}
		cancel()
	}

	periods := analytics.NewPeriodStore(db, config.AppEnv.CollectionPeriodDays)
	analytics.StartRetentionSweep(context.Background(), db, config.AppEnv.RetentionDays)

	charges := handlers.DeliveryCharges{
		Inside:  config.AppEnv.DeliveryChargeInside,
		Outside: config.AppEnv.DeliveryChargeOutside,
	}
	uploader := handlers.Uploader{Root: config.AppEnv.UploadRootDir}
	limiter := middleware.NewRateLimiter(30, 10)

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadRootDir+"/uploads")

	// Storefront
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/products/:id/related", handlers.GetRelatedProducts(db))
	r.GET("/offers", handlers.GetOffers(db))
	r.GET("/offers/:id", handlers.GetOffer(db))
	r.GET("/slider", handlers.GetSliderItems(db))
	r.GET("/orders/track/:code", handlers.TrackOrder(db))

	public := r.Group("/")
	public.Use(limiter.Limit())
	{
		public.POST("/orders", handlers.CreateOrder(db, charges))
		public.POST("/custom-orders", handlers.SubmitCustomOrder(db, charges))
		public.GET("/track/visitor-id", handlers.NewVisitorID)
		public.POST("/track/visit", handlers.TrackVisit(db, rdb))
		public.POST("/track/view", handlers.TrackProductView(db, rdb))
	}

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.POST("/offers", handlers.CreateOffer(db))
		admin.PUT("/offers/:id", handlers.UpdateOffer(db))
		admin.DELETE("/offers/:id", handlers.DeleteOffer(db))

		admin.POST("/slider", handlers.CreateSliderItem(db))
		admin.PUT("/slider/:id", handlers.UpdateSliderItem(db))
		admin.DELETE("/slider/:id", handlers.DeleteSliderItem(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.GET("/orders/:id/pdf", handlers.ExportOrderPDF(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.GET("/custom-orders", handlers.GetAllCustomOrders(db))
		admin.PATCH("/custom-orders/:id/status", handlers.UpdateCustomOrderStatus(db))
		admin.PATCH("/custom-orders/:id/notes", handlers.UpdateCustomOrderNotes(db))
		admin.DELETE("/custom-orders/:id", handlers.DeleteCustomOrder(db))

		admin.GET("/analytics", handlers.GetAnalytics(db, periods, config.AppEnv.RetentionDays))

		admin.POST("/uploads", uploader.UploadImage())
		admin.DELETE("/uploads", uploader.DeleteUpload())
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.AppEnv.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           corsHandler.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Println("listening on :" + port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
