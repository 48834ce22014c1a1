package main

import (
	"context"
	"log"
	"os"
	"time"

	"hotelhub/internal/database"
	"hotelhub/internal/domain"
	"hotelhub/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed data for local development: a staff roster, a few hotels, and demo
// bookings with prices derived from the hotel rates.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	seedUser(ctx, users, "admin@hotelhub.kz", "admin123", "Admin", domain.RoleAdmin)
	seedUser(ctx, users, "frontdesk@hotelhub.kz", "staff123", "Front Desk", domain.RoleEmployee)
	alice := seedUser(ctx, users, "alice@example.com", "guest123", "Alice Cooper", domain.RoleUser)
	bob := seedUser(ctx, users, "bob@example.com", "guest123", "Bob Reed", domain.RoleUser)

	log.Println("Creating hotels...")
	grand := seedHotel(ctx, hotels, "Grand Plaza", "Almaty", 100, 20)
	seedHotel(ctx, hotels, "Riverside Inn", "Astana", 75.5, 12)
	seedHotel(ctx, hotels, "Mountain View", "Shymkent", 120, 8)

	log.Println("Creating bookings...")
	checkIn := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	seedBooking(ctx, bookings, db, alice, grand, checkIn, checkIn.AddDate(0, 0, 4), []string{"Alice Cooper"})
	seedBooking(ctx, bookings, db, bob, grand, checkIn.AddDate(0, 0, 4), checkIn.AddDate(0, 0, 6), []string{"Bob Reed", "Carol Reed"})

	log.Println("Seed completed")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password, name string, role domain.UserRole) int64 {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		Active:       true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("seed user failed:", err)
	}
	return u.ID
}

func seedHotel(ctx context.Context, hotels *repository.HotelRepository, name, city string, rate float64, rooms int) int64 {
	h := &domain.Hotel{
		Name:           name,
		City:           city,
		NightlyRate:    rate,
		TotalRooms:     rooms,
		AvailableRooms: rooms,
		IsAvailable:    true,
	}
	if err := hotels.Create(ctx, h); err != nil {
		log.Fatal("seed hotel failed:", err)
	}
	return h.ID
}

func seedBooking(ctx context.Context, bookings *repository.BookingRepository, db *gorm.DB, userID, hotelID int64, checkIn, checkOut time.Time, guests []string) {
	var rate float64
	db.Raw(`SELECT nightly_rate FROM hotels WHERE id = ?`, hotelID).Scan(&rate)

	nights := int(checkOut.Sub(checkIn) / (24 * time.Hour))
	b := &domain.Booking{
		UserID:       userID,
		HotelID:      hotelID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		GuestNames:   guests,
		GuestsCount:  len(guests),
		TotalPrice:   rate * float64(nights),
		Status:       domain.BookingPending,
		ContactPhone: "+77001234567",
	}
	if err := bookings.Create(ctx, nil, b); err != nil {
		log.Fatal("seed booking failed:", err)
	}
}
