package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

type EmailTemplateController struct {
	TemplateSvc *services.EmailTemplateService
}

func NewEmailTemplateController(svc *services.EmailTemplateService) *EmailTemplateController {
	return &EmailTemplateController{TemplateSvc: svc}
}

type templatePayload struct {
	Category string `json:"category"`
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

// GET /api/admin/email-templates
func (ctrl *EmailTemplateController) GetAll(c *gin.Context) {
	list, err := ctrl.TemplateSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/admin/email-templates/:key
func (ctrl *EmailTemplateController) GetByKey(c *gin.Context) {
	t, err := ctrl.TemplateSvc.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, t)
}

// PUT /api/admin/email-templates/:key
func (ctrl *EmailTemplateController) Save(c *gin.Context) {
	var p templatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	t := models.EmailTemplate{Key: c.Param("key"), Category: p.Category, Subject: p.Subject, Body: p.Body}
	if err := ctrl.TemplateSvc.Save(c.Request.Context(), &t); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, t)
}

// DELETE /api/admin/email-templates/:key
// Built-in keys fall back to their defaults afterwards.
func (ctrl *EmailTemplateController) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := ctrl.TemplateSvc.Delete(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": key})
}

// POST /api/admin/email-templates/:key/preview
func (ctrl *EmailTemplateController) Preview(c *gin.Context) {
	msg, err := ctrl.TemplateSvc.Preview(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"subject": msg.Subject, "html": msg.HTML})
}
