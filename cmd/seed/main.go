package main

import (
	"log"
	"time"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/env"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// Seeds a development database with a manager account, the known carriers,
// the pricing tiers and a handful of numbers and subscribers.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	db := database.GetDB()

	manager, err := models.CreateManager("admin", "adminpassword", "Administrator")
	if err != nil {
		log.Fatalf("failed to build manager: %v", err)
	}
	if err := db.Create(manager).Error; err != nil {
		log.Fatalf("failed to seed manager: %v", err)
	}
	log.Println("Manager seeded")

	operators := []models.Operator{
		{Name: "Megafon Tajikistan", MNC: "02", ContactPhone: "+992 900 000 000", ContactEmail: "support@megafon.tj"},
		{Name: "Tcell", MNC: "03", ContactPhone: "+992 930 000 000", ContactEmail: "support@tcell.tj"},
		{Name: "Babilon-M", MNC: "04", ContactPhone: "+992 918 000 000", ContactEmail: "support@babilon.tj"},
		{Name: "Zet-Mobile", MNC: "01", ContactPhone: "+992 911 000 000", ContactEmail: "support@zet.tj"},
	}
	for i := range operators {
		if err := db.Create(&operators[i]).Error; err != nil {
			log.Fatalf("failed to seed operator %s: %v", operators[i].Name, err)
		}
	}
	log.Println("Operators seeded")

	categories := []models.Category{
		{Name: "Platinum", Code: "platinum", Surcharge: 5000, SurchargeType: models.SurchargeTypeFixed},
		{Name: "Gold", Code: "gold", Surcharge: 2000, SurchargeType: models.SurchargeTypeFixed},
		{Name: "Silver", Code: "silver", Surcharge: 500, SurchargeType: models.SurchargeTypeFixed},
		{Name: "Regular", Code: "regular", Surcharge: 0, SurchargeType: models.SurchargeTypeFixed},
		{Name: "Economy", Code: "economy", Surcharge: 10, SurchargeType: models.SurchargeTypePercent},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			log.Fatalf("failed to seed category %s: %v", categories[i].Code, err)
		}
	}
	log.Println("Categories seeded")

	subscribers := []models.Subscriber{
		{
			Type:           models.SubscriberTypeIndividual,
			Name:           "Ivanov Ivan Ivanovich",
			PassportSeries: "A",
			PassportNumber: "1234567",
			ContactPhone:   "+992 900 123 456",
			Address:        "Dushanbe, Rudaki 15",
		},
		{
			Type:         models.SubscriberTypeLegalEntity,
			Name:         "TechnoService LLC",
			INN:          "1234567890",
			ContactPhone: "+992 901 555 555",
			Address:      "Dushanbe, Somoni 50",
		},
	}
	for i := range subscribers {
		if err := db.Create(&subscribers[i]).Error; err != nil {
			log.Fatalf("failed to seed subscriber %s: %v", subscribers[i].Name, err)
		}
	}
	log.Println("Subscribers seeded")

	svc := lifecycle.NewService(db)

	numbers := []models.PhoneNumber{
		{Number: "+992 900 777 777", OperatorID: operators[0].ID, CategoryID: categories[0].ID},
		{Number: "+992 900 123 456", OperatorID: operators[0].ID, CategoryID: categories[3].ID},
		{Number: "+992 901 888 888", OperatorID: operators[1].ID, CategoryID: categories[0].ID},
		{Number: "+992 901 555 555", OperatorID: operators[1].ID, CategoryID: categories[1].ID},
	}
	for i := range numbers {
		if err := svc.CreateNumber(&numbers[i]); err != nil {
			log.Fatalf("failed to seed number %s: %v", numbers[i].Number, err)
		}
	}
	log.Println("Numbers seeded")

	// Bind a couple of numbers so the dashboard has data from the start.
	if _, err := svc.CreateContract(numbers[1].ID, subscribers[0].ID, time.Now()); err != nil {
		log.Fatalf("failed to seed contract: %v", err)
	}
	if _, err := svc.CreateContract(numbers[3].ID, subscribers[1].ID, time.Now()); err != nil {
		log.Fatalf("failed to seed contract: %v", err)
	}
	log.Println("Contracts seeded")

	if err := db.Create(&models.Setting{
		Key:         models.SettingQuarantineDays,
		Value:       "30",
		Description: "Days a number stays quarantined after contract termination",
	}).Error; err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}
	log.Println("Settings seeded")
}
