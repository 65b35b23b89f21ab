package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vacationvibes/places-backend/internal/adapters/database"
	"github.com/vacationvibes/places-backend/internal/adapters/search"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/entities"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/typesense"
	"github.com/vacationvibes/places-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init search schema: %v", err)
		}
	}

	placeRepo := database.NewPlaceAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	reactionRepo := database.NewReactionAdapter(pgClient)

	var placeService *services.PlaceService
	if searchRepo != nil {
		placeService = services.NewPlaceService(placeRepo, searchRepo)
	} else {
		placeService = services.NewPlaceService(placeRepo, nil)
	}
	authService := services.NewAuthService(userRepo, cfg.Auth)
	reactionService := services.NewReactionService(reactionRepo, nil)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				comments,
				reactions,
				place_images,
				place_types,
				places,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed places
	rating := func(v float64) *float64 { return &v }
	places := []*entities.Place{
		{
			ID:              uuid.New().String(),
			ProviderPlaceID: "ChIJseed_museum01",
			Name:            "National History Museum",
			Location:        entities.Location{Latitude: 52.5200, Longitude: 13.4050},
			Rating:          rating(4.7),
			Types:           placeTypes("museum", "establishment", "point_of_interest"),
			Images:          placeImages("https://images.example/museum01.jpg"),
			CreatedAt:       time.Now(),
		},
		{
			ID:              uuid.New().String(),
			ProviderPlaceID: "ChIJseed_park01",
			Name:            "Riverside Park",
			Location:        entities.Location{Latitude: 52.5145, Longitude: 13.3501},
			Rating:          rating(4.5),
			Types:           placeTypes("park", "tourist_attraction", "establishment"),
			Images:          placeImages("https://images.example/park01.jpg"),
			CreatedAt:       time.Now(),
		},
		{
			ID:              uuid.New().String(),
			ProviderPlaceID: "ChIJseed_cafe01",
			Name:            "Habor Cafe",
			Location:        entities.Location{Latitude: 52.5301, Longitude: 13.4012},
			Rating:          rating(4.2),
			Types:           placeTypes("cafe", "food", "establishment"),
			CreatedAt:       time.Now(),
		},
		{
			ID:              uuid.New().String(),
			ProviderPlaceID: "ChIJseed_bar01",
			Name:            "Alley Bar",
			Location:        entities.Location{Latitude: 52.4990, Longitude: 13.4200},
			Rating:          rating(3.9),
			Types:           placeTypes("bar", "night_club", "establishment"),
			CreatedAt:       time.Now(),
		},
		{
			ID:              uuid.New().String(),
			ProviderPlaceID: "ChIJseed_gallery01",
			Name:            "Modern Art Gallery",
			Location:        entities.Location{Latitude: 52.5075, Longitude: 13.3903},
			Types:           placeTypes("art_gallery", "museum", "point_of_interest"),
			CreatedAt:       time.Now(),
		},
	}

	for _, place := range places {
		if err := placeService.Create(ctx, place); err != nil {
			log.Printf("Failed to create place %s: %v", place.Name, err)
		}
	}
	log.Printf("Seeded %d places", len(places))

	// 2. Seed a demo user with a few reactions
	user, err := authService.Register(ctx, "Demo User", "demo@example.com", "demopassword")
	if err != nil {
		log.Printf("Failed to create demo user: %v", err)
		return
	}
	log.Printf("Seeded demo user %s", user.Email)

	if _, err := reactionService.Create(ctx, user.ID, places[0].ID, entities.ReactionLike); err != nil {
		log.Printf("Failed to seed reaction: %v", err)
	}
	if _, err := reactionService.Create(ctx, user.ID, places[3].ID, entities.ReactionDislike); err != nil {
		log.Printf("Failed to seed reaction: %v", err)
	}

	log.Println("Seeding complete")
}

func placeTypes(names ...string) []entities.PlaceType {
	types := make([]entities.PlaceType, 0, len(names))
	for _, name := range names {
		types = append(types, entities.PlaceType{Type: name})
	}
	return types
}

func placeImages(urls ...string) []entities.PlaceImage {
	images := make([]entities.PlaceImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, entities.PlaceImage{ImageURL: url})
	}
	return images
}
