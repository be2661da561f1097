package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type RSVPController struct {
	RSVPs *services.RSVPService
}

// constructor
func NewRSVPController(rs *services.RSVPService) *RSVPController {
	return &RSVPController{RSVPs: rs}
}

func (rc *RSVPController) Set(c *gin.Context) {
	var body struct {
		Status models.RSVPStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	rsvp, err := rc.RSVPs.Set(c.Param("id"), uid, body.Status)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

func (rc *RSVPController) Guests(c *gin.Context) {
	guests, err := rc.RSVPs.ListGuests(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, guests)
}
