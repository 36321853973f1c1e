package db

import (
	"log"
	"os"
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the database with the initial gym, service catalog,
// trainers, weekday availability windows and the admin/member accounts.
// Every step checks for existing rows so the command can be re-run safely.
func Seed(db *gorm.DB) error {
	if err := seedGym(db); err != nil {
		return err
	}
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedTrainers(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	return nil
}

func seedGym(db *gorm.DB) error {
	var count int64
	db.Model(&models.Gym{}).Count(&count)
	if count > 0 {
		return nil
	}

	gym := models.Gym{
		Name:              "Premium Fitness Center",
		Location:          "Sakarya University Campus, Serdivan/Sakarya",
		WorkingHoursStart: "06:00",
		WorkingHoursEnd:   "23:00",
		Description:       "State-of-the-art fitness facility with experienced trainers",
		ContactPhone:      "0264-295-5000",
	}
	if err := db.Create(&gym).Error; err != nil {
		return err
	}
	log.Println("Seeded gym")
	return nil
}

func seedServices(db *gorm.DB) error {
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return nil
	}

	services := []models.Service{
		{Name: "Yoga", Description: "Relaxing yoga sessions for flexibility and mindfulness", Duration: 60, Price: 150.00, IsActive: true},
		{Name: "Pilates", Description: "Core strengthening and body conditioning", Duration: 45, Price: 120.00, IsActive: true},
		{Name: "Personal Training", Description: "One-on-one fitness coaching", Duration: 60, Price: 200.00, IsActive: true},
		{Name: "CrossFit", Description: "High-intensity functional training", Duration: 60, Price: 180.00, IsActive: true},
		{Name: "Zumba", Description: "Fun dance fitness workout", Duration: 50, Price: 100.00, IsActive: true},
	}
	if err := db.Create(&services).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d services", len(services))
	return nil
}

func seedTrainers(db *gorm.DB) error {
	var count int64
	db.Model(&models.Trainer{}).Count(&count)
	if count > 0 {
		return nil
	}

	trainers := []models.Trainer{
		{
			Name:        "Ahmet Yilmaz",
			Email:       "ahmet.yilmaz@fitness.com",
			Phone:       "0555-123-4567",
			Biography:   "Certified trainer with 10 years of experience in pilates and fitness",
			IsAvailable: true,
		},
		{
			Name:        "Ayse Demir",
			Email:       "ayse.demir@fitness.com",
			Phone:       "0555-234-5678",
			Biography:   "CrossFit Level 2 trainer and nutrition specialist",
			IsAvailable: true,
		},
		{
			Name:        "Mehmet Kaya",
			Email:       "mehmet.kaya@fitness.com",
			Phone:       "0555-345-6789",
			Biography:   "Personal trainer specialised in strength and conditioning",
			IsAvailable: true,
		},
	}
	if err := db.Create(&trainers).Error; err != nil {
		return err
	}

	serviceIDsByName := map[string]uint{}
	var services []models.Service
	if err := db.Find(&services).Error; err != nil {
		return err
	}
	for _, s := range services {
		serviceIDsByName[s.Name] = s.ID
	}

	assignments := map[string][]string{
		"Ahmet Yilmaz": {"Yoga", "Pilates"},
		"Ayse Demir":   {"CrossFit", "Zumba"},
		"Mehmet Kaya":  {"Personal Training", "CrossFit"},
	}

	for _, trainer := range trainers {
		for _, serviceName := range assignments[trainer.Name] {
			serviceID, ok := serviceIDsByName[serviceName]
			if !ok {
				continue
			}
			ts := models.TrainerService{
				TrainerID:    trainer.ID,
				ServiceID:    serviceID,
				AssignedDate: time.Now(),
			}
			if err := db.Create(&ts).Error; err != nil {
				return err
			}
		}

		// Monday to Friday, 09:00-18:00
		for day := 1; day <= 5; day++ {
			window := models.TrainerAvailability{
				TrainerID: trainer.ID,
				DayOfWeek: day,
				StartTime: "09:00",
				EndTime:   "18:00",
				IsActive:  true,
			}
			if err := db.Create(&window).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d trainers with services and availability", len(trainers))
	return nil
}

func seedUsers(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@fitcenter.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	if err := seedUser(db, adminEmail, adminPassword, "System Administrator", models.RoleAdmin); err != nil {
		return err
	}
	return seedUser(db, "member@example.com", "member123", "Sample Member", models.RoleMember)
}

func seedUser(db *gorm.DB, email, password, fullName, role string) error {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		FullName:         fullName,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		RegistrationDate: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Seeded %s user %s", role, email)
	return nil
}
