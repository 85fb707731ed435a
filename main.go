package main

import (
	"log"
	"time"

	"souqeats/config"
	httpapi "souqeats/internal/api/http"
	"souqeats/internal/service"
	"souqeats/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	redisClient := config.MustInitRedis()
	defer redisClient.Close()
	cartStore := storage.NewRedisCartStore(redisClient, 7*24*time.Hour)

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	objects := storage.NewS3ObjectStore(config.MustInitS3(), config.S3Bucket(), config.S3PublicURL())
	qrEncoder := service.DefaultQRGenerator{BaseURL: config.BaseURL()}

	catalog := service.NewCatalogService(repo)
	if err := catalog.Load(); err != nil {
		// Serve with an empty storefront rather than refusing to start.
		log.Printf("initial catalog load: %v", err)
	}

	carts := service.NewCartService(cartStore, catalog)
	orders := service.NewOrderService(repo, publisher, qrEncoder)
	checkout := service.NewCheckoutService(carts, repo, objects, publisher, qrEncoder)
	accounts := service.NewAccountService(repo)
	admin := service.NewAdminService(repo, repo, objects, catalog)

	handler := httpapi.NewHandler(catalog, carts, orders, checkout, accounts, admin)
	router := httpapi.NewRouter(handler, accounts)

	httpapi.StartServer(config.HTTPAddr(), router)
}
