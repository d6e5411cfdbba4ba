package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ajoca/Barberia/internal/domain/appointment"
	"github.com/ajoca/Barberia/internal/httperr"
	"github.com/ajoca/Barberia/internal/httpresp"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/models"
	"github.com/ajoca/Barberia/internal/storage"
)

type BarberHandler struct {
	db       *gorm.DB
	uploader *storage.AvatarUploader
}

func NewBarberHandler(db *gorm.DB, uploader *storage.AvatarUploader) *BarberHandler {
	return &BarberHandler{db: db, uploader: uploader}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type ScheduleWindow struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

type UpdateBarberRequest struct {
	Specialties  string `json:"specialties"`
	Bio          string `json:"bio"`
	AvatarBase64 string `json:"avatar_base64"`

	// Agenda semanal, chaveada pelo nome do dia minúsculo ("monday").
	// Dia ausente = sem expediente.
	Schedule map[string]ScheduleWindow `json:"schedule"`
}

type barberResponse struct {
	ID          uint                      `json:"id"`
	UserID      uint                      `json:"user_id"`
	Name        string                    `json:"name"`
	Specialties string                    `json:"specialties"`
	Bio         string                    `json:"bio"`
	AvatarURL   string                    `json:"avatar_url,omitempty"`
	Schedule    map[string]ScheduleWindow `json:"schedule"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Preload("User").
		Where("active = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]barberResponse, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, h.toResponse(&b))
	}

	httpresp.List(c, out)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.toResponse(barber))
}

// ======================================================
// UPDATE (admin ou o próprio barbeiro)
// ======================================================

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.findBarber(c)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	if role != models.RoleAdmin && barber.UserID != userID {
		httperr.Forbidden(c, "forbidden", "Sem permissão para alterar este barbeiro.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber.Specialties = req.Specialties
	barber.Bio = req.Bio

	if req.AvatarBase64 != "" {
		if h.uploader.Enabled() {
			url, err := h.uploader.Upload(c.Request.Context(), req.AvatarBase64)
			if err != nil {
				httperr.BadRequest(c, "invalid_avatar", "Imagem de avatar inválida.")
				return
			}
			barber.AvatarURL = url
			barber.AvatarBase64 = ""
		} else {
			// sem bucket configurado, guardamos o base64 mesmo
			barber.AvatarBase64 = req.AvatarBase64
		}
	}

	if req.Schedule != nil {
		for day := range req.Schedule {
			if !domain.IsValidWeekday(day) {
				httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido: "+day)
				return
			}
		}

		if err := h.replaceSchedule(barber.ID, req.Schedule); err != nil {
			httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar agenda.")
			return
		}
	}

	if err := h.db.Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	c.JSON(http.StatusOK, h.toResponse(barber))
}

// ======================================================
// HELPERS
// ======================================================

func (h *BarberHandler) findBarber(c *gin.Context) (*models.Barber, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Identificador inválido.")
		return nil, false
	}

	var barber models.Barber
	if err := h.db.Preload("User").First(&barber, uint(id)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return nil, false
	}

	return &barber, true
}

func (h *BarberHandler) replaceSchedule(barberID uint, schedule map[string]ScheduleWindow) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, day := range domain.Weekdays {
			win, ok := schedule[day]
			if !ok || win.Start == "" || win.End == "" {
				continue
			}
			toCreate = append(toCreate, models.WorkingHours{
				BarberID:  barberID,
				Weekday:   day,
				StartTime: win.Start,
				EndTime:   win.End,
				Active:    true,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
}

func (h *BarberHandler) toResponse(b *models.Barber) barberResponse {
	schedule := map[string]ScheduleWindow{}

	var hours []models.WorkingHours
	h.db.Where("barber_id = ? AND active = true", b.ID).Find(&hours)
	for _, wh := range hours {
		schedule[wh.Weekday] = ScheduleWindow{Start: wh.StartTime, End: wh.EndTime}
	}

	// sem S3, o avatar vive como base64 no banco e sai direto na resposta
	avatar := b.AvatarURL
	if avatar == "" {
		avatar = b.AvatarBase64
	}

	return barberResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Name:        b.User.Name,
		Specialties: b.Specialties,
		Bio:         b.Bio,
		AvatarURL:   avatar,
		Schedule:    schedule,
	}
}
