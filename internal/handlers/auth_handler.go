package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/config"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if !validators.IsPhoneValid(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_already_registered"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email_domain"})
		return
	}

	role := req.Role
	switch role {
	case models.RoleBarber, models.RoleClient:
		// ok
	case "":
		role = models.RoleClient
	default:
		// admin não nasce via cadastro público
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Phone:        phone,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	// Barbeiro ganha o perfil junto com o cadastro
	if role == models.RoleBarber {
		barber := models.Barber{UserID: user.ID, Active: true}
		if err := h.db.Create(&barber).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
			return
		}
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":    user.ID,
			"phone": user.Phone,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var user models.User
	if err := h.db.Where("phone = ?", strings.TrimSpace(req.Phone)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account_disabled"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":    user.ID,
			"phone": user.Phone,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"phone":      user.Phone,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"active":     user.Active,
		"created_at": user.CreatedAt,
	})
}

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
