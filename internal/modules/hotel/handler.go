package hotel

import (
	"net/http"
	"strconv"

	"hotelhub/internal/domain"
	"hotelhub/internal/middleware"
	"hotelhub/internal/pkg/response"
	"hotelhub/internal/policy"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the catalog reads, open to anyone.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/hotels", h.List)
	rg.GET("/hotels/:id", h.Get)
}

// RegisterRoutes mounts the mutations, which sit behind auth. The role gate
// rejects non-admin tokens before the service runs its own policy check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/hotels", middleware.AdminOnly(), h.Create)
	rg.PATCH("/hotels/:id", middleware.AdminOnly(), h.Update)
	rg.DELETE("/hotels/:id", middleware.AdminOnly(), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeHotelError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	hotels, err := h.service.ListHotels(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list hotels")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		writeHotelError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeHotelError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid hotel ID")
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), actorFrom(c), id); err != nil {
		writeHotelError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func writeHotelError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel data")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
	case ErrHasBookings:
		response.Error(c, http.StatusConflict, "HOTEL_HAS_BOOKINGS", "Hotel cannot be deleted while bookings exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Hotel operation failed")
	}
}
