package config

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"heaven-palace/models"
	"heaven-palace/utils"
)

func jsonOf(raw string) datatypes.JSON {
	return datatypes.JSON([]byte(raw))
}

// SeedDatabase fills empty tables. Every block is skipped when its table
// already has rows, so restarts never duplicate data.
func SeedDatabase(db *gorm.DB, s Settings) {
	// ---------------- Admin ----------------
	var adminCount int64
	db.Model(&models.Account{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		if s.AdminPass == "" {
			log.Println("warning: no admin account and ADMIN_PASSWORD unset; skipping admin seed")
		} else if hash, err := bcrypt.GenerateFromPassword([]byte(s.AdminPass), bcrypt.DefaultCost); err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			id := uuid.NewString()
			email := strings.ToLower(s.AdminEmail)
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Account{ID: id, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}).Error; err != nil {
					return err
				}
				return tx.Create(&models.Profile{ID: id, Email: email, FullName: "Front Office", Role: models.RoleAdmin}).Error
			})
			if err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Hotel ----------------
	var hotelCount int64
	db.Model(&models.HotelSetting{}).Count(&hotelCount)
	if hotelCount == 0 {
		db.Create(&models.HotelSetting{
			Name:     "Heaven Palace",
			Address:  "Kandy, Sri Lanka",
			Phone:    "+94 81 234 5678",
			WhatsApp: "+94 77 123 4567",
			Email:    s.HotelInbox,
			Currency: "LKR",
		})
		log.Println("Hotel settings seeded")
	}

	// ---------------- Email templates ----------------
	for key, tpl := range utils.DefaultTemplates {
		t := models.EmailTemplate{Key: key, Category: tpl.Category, Subject: tpl.Subject, Body: tpl.Body}
		if err := db.Where(models.EmailTemplate{Key: key}).FirstOrCreate(&t).Error; err != nil {
			log.Printf("warning: failed to seed email template %s: %v", key, err)
		}
	}

	if !s.SeedCatalog {
		return
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				Name: "Standard Double", Slug: "standard-double", Price: 15000, MaxGuests: 2, Stock: 5, Status: models.RoomActive,
				Description: "A calm double room overlooking the gardens.",
				Images:      jsonOf(`["/images/accommodation/room-standard.jpg"]`),
				Amenities:   jsonOf(`{"comfort":["Air Conditioning","Free Wi-Fi"],"bath":["Hot Water","Toiletries"]}`),
			},
			{
				Name: "Deluxe Queen", Slug: "deluxe-queen", Price: 18500, MaxGuests: 3, Stock: 3, Status: models.RoomActive,
				Description: "Queen bed with a private balcony and mountain view.",
				Images:      jsonOf(`["/images/accommodation/room-deluxe.jpg"]`),
				Amenities:   jsonOf(`{"comfort":["Air Conditioning","Smart TV"],"food":["Mini Bar","Nespresso Machine","Welcome Fruit Basket"]}`),
			},
			{
				Name: "Deluxe with Bath", Slug: "deluxe-with-bath", Price: 24000, MaxGuests: 2, Stock: 2, Status: models.RoomMaintenance,
				Description: "Deluxe double with a deep soaking bathtub.",
				Images:      jsonOf(`["/images/accommodation/room-bath.jpg"]`),
				Amenities:   jsonOf(`{"bath":["Bathtub","Rain Shower"]}`),
			},
			{
				Name: "Family Suite", Slug: "family-suite", Price: 28000, MaxGuests: 4, Stock: 2, Status: models.RoomActive,
				Description: "Triple suite for families; kids under five stay free.",
				Images:      jsonOf(`["/images/accommodation/room-family.jpg"]`),
				Amenities:   jsonOf(`{"comfort":["Two Bedrooms","Sofa Bed"]}`),
			},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	// ---------------- Add-ons ----------------
	var addonCount int64
	db.Model(&models.AddOn{}).Count(&addonCount)
	if addonCount == 0 {
		addons := []models.AddOn{
			{Name: "Buffet Breakfast", Description: "Traditional Sri Lankan & Western", Price: 1500, Icon: "coffee", PricingMode: models.PricingPerGuestPerNight},
			{Name: "Airport Pickup (CMB)", Description: "Private AC Car from Katunayake", Price: 25000, Icon: "car", PricingMode: models.PricingFlat},
			{Name: "Kandy City Tour", Description: "Temple, Lake & Viewpoint", Price: 5000, Icon: "map", PricingMode: models.PricingFlat},
		}
		if err := db.Create(&addons).Error; err != nil {
			log.Printf("warning: failed to seed add-ons: %v", err)
		} else {
			log.Println("Add-ons seeded")
		}
	}

	// ---------------- Rewards ----------------
	var rewardCount int64
	db.Model(&models.Reward{}).Count(&rewardCount)
	if rewardCount == 0 {
		rewards := []models.Reward{
			{Title: "Welcome Drink", Description: "King coconut on arrival", PointsCost: 500, Active: true},
			{Title: "Late Check-out", Description: "Stay until 2 PM", PointsCost: 2500, Active: true},
			{Title: "Candle-lit Dinner", Description: "Dinner for two on the terrace", PointsCost: 8000, Active: true},
			{Title: "Free Spa Access", Description: "Full day spa pass", PointsCost: 15000, Active: true},
		}
		db.Create(&rewards)
		log.Println("Rewards seeded")
	}

	// ---------------- Offers ----------------
	var offerCount int64
	db.Model(&models.Offer{}).Count(&offerCount)
	if offerCount == 0 {
		offers := []models.Offer{
			{
				Title: "Romantic Escape Package", Subtitle: "Celebrate Love in Paradise",
				PriceLabel: "From LKR 45,000 / Night", ValidUntil: "Valid until Dec 31, 2025",
				Inclusions: jsonOf(`["Daily Breakfast in Bed","Candle-lit Dinner","Late Check-out"]`),
			},
			{
				Title: "Early Bird Discount", Subtitle: "Plan Ahead & Save",
				PriceLabel: "15% OFF", ValidUntil: "Book 30 days in advance",
				Inclusions: jsonOf(`["Breakfast Included","Free Cancellation"]`),
			},
		}
		db.Create(&offers)
		log.Println("Offers seeded")
	}
}
