package main

import (
	"log"
	"net/http"
	"time"

	"star-burger/config"
	httpapi "star-burger/internal/api/http"
	"star-burger/internal/geocoder"
	"star-burger/internal/service"
	"star-burger/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	locations := service.NewLocationService(
		storage.NewLocationRepository(db),
		storage.NewRedisCache(rdb, 7*24*time.Hour),
		geocoder.NewClient(config.GeocoderBaseURL(), config.GeocoderAPIKey(), config.GeocoderTimeout()),
	)

	catalog := service.NewCatalogService(repo, repo, locations)
	orders := service.NewOrderService(
		repo,
		repo,
		repo,
		locations,
		storage.NewKafkaPublisher(kafkaWriter),
		service.DefaultQRGenerator{BaseURL: config.BaseURL()},
		config.PhoneRegion(),
	)

	r := mux.NewRouter()
	httpapi.NewHandler(orders, catalog).RegisterRoutes(r)

	handler := cors.Default().Handler(r)

	port := config.Port()
	log.Println("Star Burger API starting on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
