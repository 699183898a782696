package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"heaven-palace/models"
	"heaven-palace/services"
	"heaven-palace/utils"
)

const maxOfferImageBytes = 8 << 20

type OfferController struct {
	OfferSvc *services.OfferService
	Files    services.FileStore
}

func NewOfferController(svc *services.OfferService, files services.FileStore) *OfferController {
	return &OfferController{OfferSvc: svc, Files: files}
}

type offerPayload struct {
	Title       string          `json:"title" binding:"required"`
	Subtitle    string          `json:"subtitle"`
	Description string          `json:"description"`
	PriceLabel  string          `json:"price_label"`
	ValidUntil  string          `json:"valid_until"`
	Inclusions  json.RawMessage `json:"inclusions"`
}

func (p offerPayload) model() models.Offer {
	return models.Offer{
		Title:       strings.TrimSpace(p.Title),
		Subtitle:    p.Subtitle,
		Description: p.Description,
		PriceLabel:  p.PriceLabel,
		ValidUntil:  p.ValidUntil,
		Inclusions:  datatypes.JSON(p.Inclusions),
	}
}

// GET /api/offers
func (ctrl *OfferController) GetOffers(c *gin.Context) {
	list, err := ctrl.OfferSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/admin/offers
func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	var p offerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	o := p.model()
	if err := ctrl.OfferSvc.Create(c.Request.Context(), &o); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, o)
}

// PUT /api/admin/offers/:id
func (ctrl *OfferController) UpdateOffer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var p offerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	o := p.model()
	o.ID = id
	if err := ctrl.OfferSvc.Update(c.Request.Context(), &o); err != nil {
		respondError(c, err)
		return
	}
	updated, err := ctrl.OfferSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

// DELETE /api/admin/offers/:id
func (ctrl *OfferController) DeleteOffer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.OfferSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// imageSource reads the upload either from the multipart field "image" or
// from a JSON body {"image": "data:image/png;base64,..."}.
func imageSource(c *gin.Context) (string, io.Reader, func(), error) {
	if fh, err := c.FormFile("image"); err == nil {
		if fh.Size > maxOfferImageBytes {
			return "", nil, nil, errImageTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, nil, err
		}
		return fh.Filename, f, func() { f.Close() }, nil
	}

	var body struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return "", nil, nil, err
	}
	data, ext, err := utils.DecodeDataURI(body.Image)
	if err != nil {
		return "", nil, nil, err
	}
	if len(data) > maxOfferImageBytes {
		return "", nil, nil, errImageTooLarge
	}
	return "offer" + ext, bytes.NewReader(data), func() {}, nil
}

// POST /api/admin/offers/:id/image
func (ctrl *OfferController) UploadImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.OfferSvc.GetByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	name, r, done, err := imageSource(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	defer done()

	url, err := ctrl.Files.Save(c.Request.Context(), "offers", name, r)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.OfferSvc.SetImage(c.Request.Context(), id, url); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id, "image": url})
}

// POST /api/admin/offers/:id/share
func (ctrl *OfferController) ShareOffer(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := ctrl.OfferSvc.ShareCampaign(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}
