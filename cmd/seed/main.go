// Seeds a small demo dataset so the assistant has something to retrieve in a
// fresh environment. Safe to re-run: rows are inserted only when their table
// is empty.
package main

import (
	"log"
	"os"
	"time"

	"nestquest-be/internal/model"
	"nestquest-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
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

	seedProperties(db)
	seedAttractions(db)
	seedTransit(db)
	seedIncidents(db)

	log.Println("✅ Seed complete")
}

func seedProperties(db *gorm.DB) {
	var count int64
	db.Model(&model.Property{}).Count(&count)
	if count > 0 {
		log.Println("Properties already seeded, skipping")
		return
	}

	properties := []model.Property{
		{Name: "Oakwood Apartments", Address: "12 Elm Street", City: "Austin", State: "TX", ZipCode: "78701", Latitude: 30.2701, Longitude: -97.7425, Rating: 4.5, MinPrice: 1350, MaxPrice: 2400},
		{Name: "Riverside Lofts", Address: "88 Lake Shore Drive", City: "Austin", State: "TX", ZipCode: "78703", Latitude: 30.2672, Longitude: -97.7610, Rating: 4.2, MinPrice: 1600, MaxPrice: 2900},
		{Name: "Cedar Heights", Address: "450 Cedar Avenue", City: "Austin", State: "TX", ZipCode: "78745", Latitude: 30.2230, Longitude: -97.7700, Rating: 3.9, MinPrice: 1100, MaxPrice: 1800},
	}
	if err := db.Create(&properties).Error; err != nil {
		log.Fatal("Error: Failed to seed properties:", err)
	}

	units := []model.Unit{
		{PropertyId: properties[0].Id, UnitNumber: "2B", Bedrooms: 1, Bathrooms: 1, Sqft: 680, Rent: 1450, IsAvailable: true, AvailableFrom: "2026-10-01"},
		{PropertyId: properties[0].Id, UnitNumber: "5A", Bedrooms: 2, Bathrooms: 2, Sqft: 1050, Rent: 2250, IsAvailable: true, AvailableFrom: "2026-09-15"},
		{PropertyId: properties[1].Id, UnitNumber: "301", Bedrooms: 0, Bathrooms: 1, Sqft: 520, Rent: 1600, IsAvailable: true, AvailableFrom: "2026-09-01"},
		{PropertyId: properties[2].Id, UnitNumber: "14", Bedrooms: 2, Bathrooms: 1, Sqft: 900, Rent: 1500, IsAvailable: false},
	}
	if err := db.Create(&units).Error; err != nil {
		log.Fatal("Error: Failed to seed units:", err)
	}

	reviews := []model.Review{
		{PropertyId: properties[0].Id, Rating: 5, Comment: "Quiet building, management responds fast.", CreatedAt: time.Now().AddDate(0, -1, 0)},
		{PropertyId: properties[0].Id, Rating: 4, Comment: "Great location, parking is tight on weekends.", CreatedAt: time.Now().AddDate(0, 0, -10)},
		{PropertyId: properties[1].Id, Rating: 4, Comment: "Love the river views. Thin walls though.", CreatedAt: time.Now().AddDate(0, 0, -5)},
	}
	if err := db.Create(&reviews).Error; err != nil {
		log.Fatal("Error: Failed to seed reviews:", err)
	}
}

func seedAttractions(db *gorm.DB) {
	var count int64
	db.Model(&model.Attraction{}).Count(&count)
	if count > 0 {
		return
	}

	attractions := []model.Attraction{
		{Name: "Corner Coffee", Category: "coffee", Latitude: 30.2710, Longitude: -97.7410},
		{Name: "Zilker Park", Category: "park", Latitude: 30.2669, Longitude: -97.7729},
		{Name: "Eastside Gym", Category: "gym", Latitude: 30.2655, Longitude: -97.7300},
		{Name: "Fresh Fields Grocery", Category: "grocery", Latitude: 30.2690, Longitude: -97.7500},
	}
	if err := db.Create(&attractions).Error; err != nil {
		log.Fatal("Error: Failed to seed attractions:", err)
	}
}

func seedTransit(db *gorm.DB) {
	var count int64
	db.Model(&model.TransitStop{}).Count(&count)
	if count > 0 {
		return
	}

	stops := []model.TransitStop{
		{Name: "Congress & 3rd", StopType: "bus", Latitude: 30.2648, Longitude: -97.7443},
		{Name: "Downtown Station", StopType: "rail", Latitude: 30.2650, Longitude: -97.7394},
		{Name: "Lamar & 5th", StopType: "bus", Latitude: 30.2695, Longitude: -97.7520},
	}
	if err := db.Create(&stops).Error; err != nil {
		log.Fatal("Error: Failed to seed transit stops:", err)
	}

	routes := []model.TransitRoute{
		{RouteName: "Route 801", RouteType: "bus", Description: "North-south rapid line along Lamar and Congress, every 15 minutes."},
		{RouteName: "Red Line", RouteType: "rail", Description: "Commuter rail from Downtown Station to the northwest suburbs."},
	}
	if err := db.Create(&routes).Error; err != nil {
		log.Fatal("Error: Failed to seed transit routes:", err)
	}
}

func seedIncidents(db *gorm.DB) {
	var count int64
	db.Model(&model.SafetyIncident{}).Count(&count)
	if count > 0 {
		return
	}

	incidents := []model.SafetyIncident{
		{IncidentType: "bike theft", Severity: "low", Description: "Bicycle stolen from an unlocked rack.", Latitude: 30.2700, Longitude: -97.7430, OccurredAt: time.Now().AddDate(0, 0, -12)},
		{IncidentType: "vandalism", Severity: "low", Description: "Graffiti reported on a parking structure.", Latitude: 30.2660, Longitude: -97.7450, OccurredAt: time.Now().AddDate(0, 0, -30)},
	}
	if err := db.Create(&incidents).Error; err != nil {
		log.Fatal("Error: Failed to seed incidents:", err)
	}
}
