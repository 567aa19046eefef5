package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
)

func intPtr(n int) *int { return &n }

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "rentiva"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password-1"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	landlord := model.User{
		ID:           "landlord_" + uuid.New().String()[:8],
		Email:        "demo@rentiva.dev",
		Name:         "Demo Landlord",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if _, err := db.Collection("users").InsertOne(ctx, landlord); err != nil {
		log.Fatalf("Failed to insert demo landlord: %v", err)
	}

	now := time.Now()
	properties := []model.Property{
		{
			ID:          "prop_" + uuid.New().String()[:8],
			LandlordID:  landlord.ID,
			Title:       "Sunny two-bedroom near the park",
			Description: "Bright flat on the third floor, renovated kitchen.",
			City:        "Valencia",
			Address:     "Carrer de la Pau 12",
			Price:       1150,
			Bedrooms:    2,
			AreaSqm:     74,
			Amenities:   []string{"balcony", "dishwasher"},
			Prefs: compat.OwnerPrefs{
				Smoking:          compat.ChoiceNo,
				Pets:             compat.ChoiceEither,
				Usage:            []string{"family", "couple"},
				QuietHoursAfter:  intPtr(22),
				QuietHoursStrict: false,
				MaxOccupants:     intPtr(4),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "prop_" + uuid.New().String()[:8],
			LandlordID:  landlord.ID,
			Title:       "Studio for remote workers",
			Description: "Compact studio with fiber internet and a desk nook.",
			City:        "Valencia",
			Address:     "Avinguda del Port 88",
			Price:       720,
			Bedrooms:    1,
			AreaSqm:     38,
			Amenities:   []string{"fiber", "elevator"},
			Prefs: compat.OwnerPrefs{
				Smoking:          compat.ChoiceNo,
				Pets:             compat.ChoiceNo,
				Usage:            []string{"remote_work", "single"},
				QuietHoursAfter:  intPtr(23),
				QuietHoursStrict: true,
				MaxOccupants:     intPtr(2),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, p := range properties {
		if _, err := db.Collection("properties").InsertOne(ctx, p); err != nil {
			log.Fatalf("Failed to insert property %s: %v", p.Title, err)
		}
	}

	fmt.Printf("Seeded landlord %s (demo@rentiva.dev / demo-password-1) with %d properties\n", landlord.ID, len(properties))
}
