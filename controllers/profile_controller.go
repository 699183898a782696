package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/middleware"
	"heaven-palace/services"
	"heaven-palace/utils"
)

const maxAvatarBytes = 5 << 20

type ProfileController struct {
	ProfileSvc *services.ProfileService
}

func NewProfileController(svc *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileSvc: svc}
}

// GET /api/profile
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	p, err := ctrl.ProfileSvc.Get(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// PUT /api/profile
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var in services.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	p, err := ctrl.ProfileSvc.Update(c.Request.Context(), middleware.CurrentIdentity(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// POST /api/profile/avatar (multipart, field "avatar")
func (ctrl *ProfileController) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.fileMissing", "avatar file is required")
		return
	}
	if fh.Size > maxAvatarBytes {
		utils.JSONErrorCode(c, http.StatusRequestEntityTooLarge, "error.fileTooLarge", "avatar must be 5MB or smaller")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	p, err := ctrl.ProfileSvc.SetAvatar(c.Request.Context(), middleware.CurrentIdentity(c), fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// GET /api/profile/bookings
func (ctrl *ProfileController) GetBookings(c *gin.Context) {
	list, err := ctrl.ProfileSvc.Bookings(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/profile/loyalty
func (ctrl *ProfileController) GetLoyalty(c *gin.Context) {
	st, err := ctrl.ProfileSvc.Loyalty(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}

// POST /api/rewards/:id/redeem
// Reports eligibility only; points are not deducted.
func (ctrl *ProfileController) Redeem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := ctrl.ProfileSvc.Redeem(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}
