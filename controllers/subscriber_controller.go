package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/services"
	"heaven-palace/utils"
)

type SubscriberController struct {
	SubscriberSvc *services.SubscriberService
	ContactSvc    *services.ContactService
}

func NewSubscriberController(subs *services.SubscriberService, contact *services.ContactService) *SubscriberController {
	return &SubscriberController{SubscriberSvc: subs, ContactSvc: contact}
}

type subscribePayload struct {
	Email string `json:"email" binding:"required"`
}

// POST /api/subscribers
// Subscribing twice is not an error; the second call returns 200.
func (ctrl *SubscriberController) Subscribe(c *gin.Context) {
	var p subscribePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	sub, created, err := ctrl.SubscriberSvc.Subscribe(c.Request.Context(), p.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.JSONSuccess(c, status, sub)
}

// GET /api/admin/subscribers
func (ctrl *SubscriberController) GetAll(c *gin.Context) {
	list, err := ctrl.SubscriberSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/contact
func (ctrl *SubscriberController) Contact(c *gin.Context) {
	var m services.ContactMessage
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.ContactSvc.Send(c.Request.Context(), m); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusAccepted, gin.H{"message": "thank you, we will get back to you shortly"})
}
