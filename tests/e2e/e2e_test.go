package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelhub/internal/database"
	"hotelhub/internal/domain"
	"hotelhub/internal/middleware"
	"hotelhub/internal/modules/auth"
	"hotelhub/internal/modules/booking"
	"hotelhub/internal/modules/hotel"
	"hotelhub/internal/modules/user"
	jwtsvc "hotelhub/internal/pkg/jwt"
	"hotelhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// Every pooled connection to :memory: would get its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db), "Failed to migrate test database")

	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authService := auth.NewService(txManager, userRepo, tokenRepo, jwtService, "test-pepper", 720*time.Hour)
	authHandler := auth.NewHandler(authService)

	hotelService := hotel.NewService(txManager, hotelRepo, bookingRepo)
	hotelHandler := hotel.NewHandler(hotelService)

	bookingService := booking.NewService(txManager, bookingRepo, hotelRepo)
	bookingHandler := booking.NewHandler(bookingService)

	userService := user.NewService(txManager, userRepo, tokenRepo)
	userHandler := user.NewHandler(userService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	hotelHandler.RegisterPublicRoutes(v1)
	bookingHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		userHandler.RegisterRoutes(protected)
		hotelHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// createUser inserts an account directly and returns its access token.
func (s *E2ETestSuite) createUser(t *testing.T, email string, role domain.UserRole) (int64, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         "Test " + string(role),
		Active:       true,
	}
	require.NoError(t, repository.NewUserRepository(s.db).Create(context.Background(), u))

	token, err := s.jwtService.GenerateToken(u.ID, string(role))
	require.NoError(t, err)
	return u.ID, token
}

func (s *E2ETestSuite) createHotel(t *testing.T, adminToken string, name string, rate float64) int64 {
	t.Helper()
	w := s.makeRequest(http.MethodPost, "/api/v1/hotels", map[string]interface{}{
		"name":         name,
		"city":         "Almaty",
		"nightly_rate": rate,
		"total_rooms":  10,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	hotelData := resp.Data["hotel"].(map[string]interface{})
	return int64(hotelData["id"].(float64))
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Truncate(24 * time.Hour).Format(time.RFC3339)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	s := setupTestSuite(t)

	w := s.makeRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Alice Cooper",
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	userData := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "user", userData["role"])

	w = s.makeRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp = parseResponse(t, w)
	tokens := resp.Data["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])

	// Refresh rotates the token pair.
	w = s.makeRequest(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens["refresh_token"].(string),
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Replaying the rotated token is rejected.
	w = s.makeRequest(http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": tokens["refresh_token"].(string),
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlow(t *testing.T) {
	s := setupTestSuite(t)

	_, adminToken := s.createUser(t, "admin@example.com", domain.RoleAdmin)
	_, aliceToken := s.createUser(t, "alice@example.com", domain.RoleUser)
	_, bobToken := s.createUser(t, "bob@example.com", domain.RoleUser)

	hotelID := s.createHotel(t, adminToken, "Grand Plaza", 100)

	// Alice books 4 nights; price is nights times rate.
	w := s.makeRequest(http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"hotel_id":      hotelID,
		"check_in":      futureDate(30),
		"check_out":     futureDate(34),
		"guest_names":   []string{"Alice Cooper"},
		"contact_phone": "+77001234567",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	bookingData := resp.Data["booking"].(map[string]interface{})
	assert.Equal(t, 400.0, bookingData["total_price"])
	assert.Equal(t, "pending", bookingData["status"])

	// Bob's overlapping request is rejected.
	w = s.makeRequest(http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"hotel_id":      hotelID,
		"check_in":      futureDate(32),
		"check_out":     futureDate(36),
		"guest_names":   []string{"Bob Reed"},
		"contact_phone": "+77007654321",
	}, bobToken)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)

	// A back-to-back stay starting on Alice's checkout day is fine.
	w = s.makeRequest(http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"hotel_id":      hotelID,
		"check_in":      futureDate(34),
		"check_out":     futureDate(36),
		"guest_names":   []string{"Bob Reed"},
		"contact_phone": "+77007654321",
	}, bobToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAvailabilityProbe(t *testing.T) {
	s := setupTestSuite(t)

	_, adminToken := s.createUser(t, "admin@example.com", domain.RoleAdmin)
	_, aliceToken := s.createUser(t, "alice@example.com", domain.RoleUser)

	hotelID := s.createHotel(t, adminToken, "Grand Plaza", 100)

	w := s.makeRequest(http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"hotel_id":      hotelID,
		"check_in":      futureDate(30),
		"check_out":     futureDate(34),
		"guest_names":   []string{"Alice Cooper"},
		"contact_phone": "+77001234567",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Probe needs no auth.
	path := fmt.Sprintf("/api/v1/hotels/%d/availability?check_in=%s&check_out=%s",
		hotelID,
		time.Now().AddDate(0, 0, 31).Format("2006-01-02"),
		time.Now().AddDate(0, 0, 33).Format("2006-01-02"))
	w = s.makeRequest(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"available":false`)

	path = fmt.Sprintf("/api/v1/hotels/%d/availability?check_in=%s&check_out=%s",
		hotelID,
		time.Now().AddDate(0, 0, 40).Format("2006-01-02"),
		time.Now().AddDate(0, 0, 42).Format("2006-01-02"))
	w = s.makeRequest(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestCancellationRules(t *testing.T) {
	s := setupTestSuite(t)

	_, adminToken := s.createUser(t, "admin@example.com", domain.RoleAdmin)
	_, aliceToken := s.createUser(t, "alice@example.com", domain.RoleUser)
	_, bobToken := s.createUser(t, "bob@example.com", domain.RoleUser)

	hotelID := s.createHotel(t, adminToken, "Grand Plaza", 100)

	w := s.makeRequest(http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"hotel_id":      hotelID,
		"check_in":      futureDate(30),
		"check_out":     futureDate(34),
		"guest_names":   []string{"Alice Cooper"},
		"contact_phone": "+77001234567",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	bookingID := int64(resp.Data["booking"].(map[string]interface{})["id"].(float64))

	// Bob cannot cancel Alice's booking.
	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// Alice cancels with a month of notice.
	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, aliceToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Cancelling a cancelled booking hits the terminal rule.
	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, aliceToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, "BUSINESS_RULE", resp.Error.Code)
}

func TestHotelAdminOnly(t *testing.T) {
	s := setupTestSuite(t)

	_, employeeToken := s.createUser(t, "staff@example.com", domain.RoleEmployee)
	_, guestToken := s.createUser(t, "alice@example.com", domain.RoleUser)

	body := map[string]interface{}{
		"name":         "Grand Plaza",
		"nightly_rate": 100,
		"total_rooms":  10,
	}

	w := s.makeRequest(http.MethodPost, "/api/v1/hotels", body, employeeToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodPost, "/api/v1/hotels", body, guestToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestLastAdminProtected(t *testing.T) {
	s := setupTestSuite(t)

	adminID, adminToken := s.createUser(t, "admin@example.com", domain.RoleAdmin)

	// The sole admin cannot delete itself.
	w := s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", adminID), nil, adminToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	assert.Equal(t, "LAST_ADMIN", resp.Error.Code)

	// With a second admin in place deletion goes through.
	s.createUser(t, "admin2@example.com", domain.RoleAdmin)
	w = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", adminID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLastAdminDemotionBlocked(t *testing.T) {
	s := setupTestSuite(t)

	adminID, adminToken := s.createUser(t, "admin@example.com", domain.RoleAdmin)

	// Demoting the sole admin is rejected just like deleting it.
	body := map[string]interface{}{"role": "user"}
	w := s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", adminID), body, adminToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	assert.Equal(t, "LAST_ADMIN", resp.Error.Code)

	s.createUser(t, "admin2@example.com", domain.RoleAdmin)
	w = s.makeRequest(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", adminID), body, adminToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUserListStaffOnly(t *testing.T) {
	s := setupTestSuite(t)

	_, guestToken := s.createUser(t, "alice@example.com", domain.RoleUser)
	_, staffToken := s.createUser(t, "staff@example.com", domain.RoleEmployee)

	w := s.makeRequest(http.MethodGet, "/api/v1/users", nil, guestToken)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/api/v1/users", nil, staffToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
