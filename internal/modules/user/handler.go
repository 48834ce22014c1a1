package user

import (
	"net/http"
	"strconv"

	"hotelhub/internal/domain"
	"hotelhub/internal/middleware"
	"hotelhub/internal/pkg/response"
	"hotelhub/internal/pkg/validator"
	"hotelhub/internal/policy"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", middleware.StaffOnly(), h.List)
	rg.POST("/users", middleware.StaffOnly(), h.Create)
	rg.GET("/users/:id", h.Get)
	rg.PATCH("/users/:id", h.Update)
	rg.DELETE("/users/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.service.ListUsers(c.Request.Context(), actorFrom(c), limit, offset)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", fields)
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", fields)
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actorFrom(c), id); err != nil {
		writeUserError(c, err)
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

func writeUserError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this account")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case ErrEmailTaken:
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case ErrLastAdmin:
		response.Error(c, http.StatusUnprocessableEntity, "LAST_ADMIN", "The last admin account cannot be removed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "User operation failed")
	}
}
