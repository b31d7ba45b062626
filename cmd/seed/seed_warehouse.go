package main

import (
	"ai-travelplanner-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func seedFlights(db *gorm.DB) {
	color.Yellow("\n[1] Seeding flight options...")

	flights := []model.FlightOption{
		{Airline: "IndiGo", SourceCity: "Delhi", DestCity: "Mumbai", DepartureTime: day(6), ArrivalTime: day(8), Price: 4500, Stops: 0},
		{Airline: "Air India", SourceCity: "Delhi", DestCity: "Mumbai", DepartureTime: day(9), ArrivalTime: day(11), Price: 5200, Stops: 0},
		{Airline: "Vistara", SourceCity: "Delhi", DestCity: "Goa", DepartureTime: day(7), ArrivalTime: day(10), Price: 6100, Stops: 1},
		{Airline: "SpiceJet", SourceCity: "Mumbai", DestCity: "Goa", DepartureTime: day(12), ArrivalTime: day(13), Price: 3200, Stops: 0},
		{Airline: "IndiGo", SourceCity: "Bengaluru", DestCity: "Jaipur", DepartureTime: day(8), ArrivalTime: day(11), Price: 5800, Stops: 1},
		{Airline: "Air India", SourceCity: "Delhi", DestCity: "Jaipur", DepartureTime: day(10), ArrivalTime: day(11), Price: 2900, Stops: 0},
	}

	for _, f := range flights {
		var existing model.FlightOption
		err := db.Where("airline = ? AND source_city = ? AND dest_city = ? AND departure_time = ?",
			f.Airline, f.SourceCity, f.DestCity, f.DepartureTime).First(&existing).Error
		if err == nil {
			color.Yellow("Flight %s %s-%s already exists, skipping...", f.Airline, f.SourceCity, f.DestCity)
			continue
		}
		if err := db.Create(&f).Error; err != nil {
			color.Red("Error creating flight %s %s-%s: %v", f.Airline, f.SourceCity, f.DestCity, err)
		} else {
			color.Green("Created flight: %s %s-%s", f.Airline, f.SourceCity, f.DestCity)
		}
	}
}

func seedHotels(db *gorm.DB) {
	color.Yellow("\n[2] Seeding hotel options...")

	hotels := []model.HotelOption{
		{Name: "The Taj Mahal Palace", City: "Mumbai", Rating: 4.8, PricePerNight: 18000, Amenities: "pool,spa,wifi,sea view"},
		{Name: "Trident Nariman Point", City: "Mumbai", Rating: 4.5, PricePerNight: 11000, Amenities: "pool,wifi,gym"},
		{Name: "Taj Exotica Resort", City: "Goa", Rating: 4.7, PricePerNight: 15000, Amenities: "beach,pool,spa,wifi"},
		{Name: "Hard Rock Hotel", City: "Goa", Rating: 4.2, PricePerNight: 7500, Amenities: "pool,wifi,bar"},
		{Name: "Rambagh Palace", City: "Jaipur", Rating: 4.9, PricePerNight: 32000, Amenities: "heritage,pool,spa,wifi"},
		{Name: "Zostel Jaipur", City: "Jaipur", Rating: 4.1, PricePerNight: 1200, Amenities: "wifi,rooftop"},
	}

	for _, h := range hotels {
		var existing model.HotelOption
		if err := db.Where("name = ? AND city = ?", h.Name, h.City).First(&existing).Error; err == nil {
			color.Yellow("Hotel '%s' already exists, skipping...", h.Name)
			continue
		}
		if err := db.Create(&h).Error; err != nil {
			color.Red("Error creating hotel '%s': %v", h.Name, err)
		} else {
			color.Green("Created hotel: %s (%s)", h.Name, h.City)
		}
	}
}

func seedActivities(db *gorm.DB) {
	color.Yellow("\n[3] Seeding activities...")

	activities := []model.Activity{
		{Name: "Gateway of India Walk", City: "Mumbai", Category: "sightseeing", Description: "Guided heritage walk around the Gateway of India and Colaba.", Rating: 4.4},
		{Name: "Elephanta Caves Tour", City: "Mumbai", Category: "culture", Description: "Ferry trip and guided tour of the rock-cut Elephanta Caves.", Rating: 4.6},
		{Name: "Dudhsagar Falls Trek", City: "Goa", Category: "adventure", Description: "Full-day jeep and trek excursion to Dudhsagar waterfalls.", Rating: 4.7},
		{Name: "Sunset River Cruise", City: "Goa", Category: "leisure", Description: "Evening cruise on the Mandovi river with live music.", Rating: 4.0},
		{Name: "Amber Fort Visit", City: "Jaipur", Category: "culture", Description: "Morning tour of Amber Fort with an elephant-free jeep ascent.", Rating: 4.8},
		{Name: "Bazaar Food Crawl", City: "Jaipur", Category: "food", Description: "Street food tasting across Johari and Bapu bazaars.", Rating: 4.5},
	}

	for _, a := range activities {
		var existing model.Activity
		if err := db.Where("name = ? AND city = ?", a.Name, a.City).First(&existing).Error; err == nil {
			color.Yellow("Activity '%s' already exists, skipping...", a.Name)
			continue
		}
		if err := db.Create(&a).Error; err != nil {
			color.Red("Error creating activity '%s': %v", a.Name, err)
		} else {
			color.Green("Created activity: %s (%s)", a.Name, a.City)
		}
	}
}
