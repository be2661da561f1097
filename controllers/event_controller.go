package controllers

import (
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	Events *services.EventService
}

// constructor
func NewEventController(es *services.EventService) *EventController {
	return &EventController{Events: es}
}

func (ec *EventController) Import(c *gin.Context) {
	var imp services.EventImport
	if err := c.ShouldBindJSON(&imp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.Events.ImportEvent(imp)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) GetActive(c *gin.Context) {
	event, err := ec.Events.ActiveEvent()
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) Activate(c *gin.Context) {
	event, err := ec.Events.Activate(c.Param("id"))
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) SetLockTime(c *gin.Context) {
	var body struct {
		LockTime *time.Time `json:"lock_time"` // null clears the boundary
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.Events.SetLockTime(c.Param("id"), body.LockTime)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) Archive(c *gin.Context) {
	events, err := ec.Events.ListArchive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (ec *EventController) Get(c *gin.Context) {
	event, err := ec.Events.GetEvent(c.Param("id"))
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Invite mails the envelope to every member.
func (ec *EventController) Invite(c *gin.Context) {
	event, err := ec.Events.GetEvent(c.Param("id"))
	if err != nil {
		respondClaimError(c, err)
		return
	}

	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sent := 0
	for _, u := range users {
		if err := utils.SendInviteEmail(u.Email, event.Title, event.Date.Format("Monday, January 2"), event.Location); err == nil {
			sent++
		}
	}
	c.JSON(http.StatusOK, gin.H{"invited": sent})
}

// UploadCover stores a cookbook cover image on S3, past moderation.
func (ec *EventController) UploadCover(c *gin.Context) {
	var body struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.Events.GetEvent(c.Param("id"))
	if err != nil {
		respondClaimError(c, err)
		return
	}
	if event.Cookbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event has no cookbook"})
		return
	}

	imageData, contentType, err := utils.DecodeBase64Image(body.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flagged, err := utils.ModerateImage(imageData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "moderation check failed"})
		return
	}
	if len(flagged) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image rejected"})
		return
	}

	url, err := utils.UploadImageToS3(imageData, contentType, "covers", event.Cookbook.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	event.Cookbook.CoverURL = url
	config.DB.Save(event.Cookbook)

	c.JSON(http.StatusOK, gin.H{"cover_url": url})
}
