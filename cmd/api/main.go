package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelhub/internal/config"
	"hotelhub/internal/database"
	"hotelhub/internal/middleware"
	"hotelhub/internal/modules/auth"
	"hotelhub/internal/modules/booking"
	"hotelhub/internal/modules/hotel"
	"hotelhub/internal/modules/user"
	jwtsvc "hotelhub/internal/pkg/jwt"
	"hotelhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(txManager, userRepo, tokenRepo, j, cfg.RefreshTokenPepper, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	hotelService := hotel.NewService(txManager, hotelRepo, bookingRepo)
	hotelHandler := hotel.NewHandler(hotelService)

	bookingService := booking.NewService(txManager, bookingRepo, hotelRepo)
	bookingHandler := booking.NewHandler(bookingService)

	userService := user.NewService(txManager, userRepo, tokenRepo)
	userHandler := user.NewHandler(userService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		hotelHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
			hotelHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
