package main

import (
	"log"
	"os"
	"time"

	"ai-travelplanner-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding travel warehouse demo data\n")

	seedFlights(db)
	seedHotels(db)
	seedActivities(db)

	color.Cyan("\nSeeding completed! Activities still need embeddings: create them via the API or re-run the embed consumer.")
}

func day(hour int) time.Time {
	base := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	return base.Add(time.Duration(hour) * time.Hour)
}
