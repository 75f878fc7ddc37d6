package main

import (
	"log"
	"net/http"

	"quiltshop-be/internal/config"
	"quiltshop-be/internal/db"
	"quiltshop-be/internal/handler"
	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/order"
	"quiltshop-be/internal/payment"
	"quiltshop-be/internal/product"
	"quiltshop-be/internal/upload"
	"quiltshop-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	featuredSupported := db.HasColumn(database, "products", "featured_home")

	productRepo := product.NewRepository(database, featuredSupported)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.FrontendURL, cfg.StripeCallbackToken)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, gateway)

	uploadSvc, err := upload.NewService(cfg.UploadDir, cfg.PublicOrigin)
	if err != nil {
		log.Fatalf("Failed to init upload storage: %v", err)
	}

	h := handler.NewHandler(cfg, userSvc, productSvc, orderSvc, uploadSvc, gateway)

	log.Printf("Backend running on http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, h.SetupRouter()))
}
