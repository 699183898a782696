package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

type RewardController struct {
	RewardSvc *services.RewardService
}

func NewRewardController(svc *services.RewardService) *RewardController {
	return &RewardController{RewardSvc: svc}
}

type rewardPayload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PointsCost  int64  `json:"points_cost" binding:"required,gt=0"`
	Active      *bool  `json:"active"`
}

func (p rewardPayload) model() models.Reward {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return models.Reward{Title: p.Title, Description: p.Description, PointsCost: p.PointsCost, Active: active}
}

// GET /api/rewards (active only) and /api/admin/rewards (all)
func (ctrl *RewardController) GetRewards(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ctrl.RewardSvc.GetAll(c.Request.Context(), activeOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, list)
	}
}

// POST /api/admin/rewards
func (ctrl *RewardController) CreateReward(c *gin.Context) {
	var p rewardPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r := p.model()
	if err := ctrl.RewardSvc.Create(c.Request.Context(), &r); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r)
}

// PUT /api/admin/rewards/:id
func (ctrl *RewardController) UpdateReward(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p rewardPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r := p.model()
	r.ID = id
	if err := ctrl.RewardSvc.Update(c.Request.Context(), &r); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

// DELETE /api/admin/rewards/:id
func (ctrl *RewardController) DeleteReward(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RewardSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
