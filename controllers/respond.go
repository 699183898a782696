package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heaven-palace/services"
	"heaven-palace/utils"
)

// respondError maps service errors onto HTTP statuses. Anything unknown
// is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		utils.JSONErrorCode(c, http.StatusUnauthorized, "error.unauthenticated", "please sign in to continue")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONErrorCode(c, http.StatusForbidden, "error.forbidden", "not allowed")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONErrorCode(c, http.StatusConflict, "error.invalidTransition", err.Error())
	case errors.Is(err, services.ErrSubmissionInFlight):
		utils.JSONErrorCode(c, http.StatusConflict, "error.submissionInFlight", err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONErrorCode(c, http.StatusConflict, "error.conflict", err.Error())
	case errors.Is(err, services.ErrRemote):
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.JSONErrorCode(c, http.StatusBadGateway, "error.remote", "the booking service is unavailable, please try again")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

var errImageTooLarge = errors.New("image must be 8MB or smaller")
