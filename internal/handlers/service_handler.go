package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/httpresp"
	"github.com/ajoca/Barberia/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_minutes" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("active = true")
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// Update é correção administrativa: duração e preço de agendamentos já
// criados não mudam (snapshot na criação).
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Identificador inválido.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.Category = req.Category

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}
