package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/middleware"
	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

type reviewPayload struct {
	GuestName  string `json:"guest_name"`
	Email      string `json:"email" binding:"omitempty,email"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Text       string `json:"text"`
	BookingRef string `json:"booking_ref"`
}

// GET /api/reviews
func (ctrl *ReviewController) GetApproved(c *gin.Context) {
	list, err := ctrl.ReviewSvc.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/reviews
// Works signed in or anonymous; new reviews wait for moderation.
func (ctrl *ReviewController) Submit(c *gin.Context) {
	var p reviewPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r := models.Review{
		GuestName:  p.GuestName,
		Email:      p.Email,
		Rating:     p.Rating,
		Text:       p.Text,
		BookingRef: p.BookingRef,
	}
	if err := ctrl.ReviewSvc.Submit(c.Request.Context(), &r, middleware.CurrentIdentity(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r)
}

// GET /api/admin/reviews?status=Pending
func (ctrl *ReviewController) GetAll(c *gin.Context) {
	list, err := ctrl.ReviewSvc.List(c.Request.Context(), models.ReviewStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

type moderatePayload struct {
	Status models.ReviewStatus `json:"status" binding:"required"`
}

// PATCH /api/admin/reviews/:id/status
func (ctrl *ReviewController) Moderate(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p moderatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.ReviewSvc.Moderate(c.Request.Context(), id, p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

type replyPayload struct {
	Reply string `json:"reply" binding:"required"`
}

// POST /api/admin/reviews/:id/reply
func (ctrl *ReviewController) Reply(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p replyPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.ReviewSvc.Reply(c.Request.Context(), id, p.Reply)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}
