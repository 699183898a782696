package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

// AdminController serves the back-office overview pages.
type AdminController struct {
	DashboardSvc *services.DashboardService
	GuestSvc     *services.GuestService
	SettingsSvc  *services.SettingsService
}

func NewAdminController(dashboard *services.DashboardService, guests *services.GuestService, settings *services.SettingsService) *AdminController {
	return &AdminController{DashboardSvc: dashboard, GuestSvc: guests, SettingsSvc: settings}
}

// GET /api/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	st, err := ctrl.DashboardSvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}

// GET /api/admin/guests
func (ctrl *AdminController) GetGuests(c *gin.Context) {
	list, err := ctrl.GuestSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/admin/guests/:id
func (ctrl *AdminController) GetGuest(c *gin.Context) {
	g, err := ctrl.GuestSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

// GET /api/settings
func (ctrl *AdminController) GetSettings(c *gin.Context) {
	hs, err := ctrl.SettingsSvc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hs)
}

type settingsPayload struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email" binding:"omitempty,email"`
	Website  string `json:"website"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// PUT /api/admin/settings
func (ctrl *AdminController) UpdateSettings(c *gin.Context) {
	var p settingsPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	hs, err := ctrl.SettingsSvc.Update(c.Request.Context(), models.HotelSetting{
		Name:     p.Name,
		Address:  p.Address,
		Phone:    p.Phone,
		WhatsApp: p.WhatsApp,
		Email:    p.Email,
		Website:  p.Website,
		Currency: p.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hs)
}
