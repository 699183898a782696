package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type roomPayload struct {
	Name        string            `json:"name" binding:"required"`
	Slug        string            `json:"slug"`
	Price       int64             `json:"price" binding:"gte=0"`
	MaxGuests   int               `json:"max_guests" binding:"omitempty,min=1,max=10"`
	Stock       int               `json:"stock" binding:"omitempty,min=0"`
	Status      models.RoomStatus `json:"status" binding:"omitempty,oneof=Active Maintenance"`
	Description string            `json:"description"`
	Images      json.RawMessage   `json:"images"`
	Amenities   json.RawMessage   `json:"amenities"`
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func (p roomPayload) model() models.Room {
	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		slug = slugify(p.Name)
	}
	return models.Room{
		Name:        strings.TrimSpace(p.Name),
		Slug:        slug,
		Price:       p.Price,
		MaxGuests:   p.MaxGuests,
		Stock:       p.Stock,
		Status:      p.Status,
		Description: p.Description,
		Images:      datatypes.JSON(p.Images),
		Amenities:   datatypes.JSON(p.Amenities),
	}
}

// GET /api/rooms
// Admins calling /api/admin/rooms also see rooms under maintenance.
func (ctrl *RoomController) GetRooms(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := ctrl.RoomSvc.GetAll(c.Request.Context(), activeOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, rooms)
	}
}

// GET /api/rooms/:id
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// POST /api/admin/rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var p roomPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	room := p.model()
	if err := ctrl.RoomSvc.Create(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PUT /api/admin/rooms/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p roomPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	room := p.model()
	room.ID = id
	if err := ctrl.RoomSvc.Update(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}
	updated, err := ctrl.RoomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

// DELETE /api/admin/rooms/:id
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

type AddOnController struct {
	AddOnSvc *services.AddOnService
}

func NewAddOnController(svc *services.AddOnService) *AddOnController {
	return &AddOnController{AddOnSvc: svc}
}

type addonPayload struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       int64              `json:"price" binding:"gte=0"`
	Icon        string             `json:"icon"`
	PricingMode models.PricingMode `json:"pricing_mode" binding:"required,pricing_mode"`
}

func (p addonPayload) model() models.AddOn {
	return models.AddOn{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Price:       p.Price,
		Icon:        p.Icon,
		PricingMode: p.PricingMode,
	}
}

// GET /api/addons
func (ctrl *AddOnController) GetAddOns(c *gin.Context) {
	list, err := ctrl.AddOnSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/admin/addons
func (ctrl *AddOnController) CreateAddOn(c *gin.Context) {
	var p addonPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	a := p.model()
	if err := ctrl.AddOnSvc.Create(c.Request.Context(), &a); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, a)
}

// PUT /api/admin/addons/:id
func (ctrl *AddOnController) UpdateAddOn(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p addonPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	a := p.model()
	a.ID = id
	if err := ctrl.AddOnSvc.Update(c.Request.Context(), &a); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, a)
}

// DELETE /api/admin/addons/:id
func (ctrl *AddOnController) DeleteAddOn(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.AddOnSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
