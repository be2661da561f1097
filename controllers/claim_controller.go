package controllers

import (
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type ClaimController struct {
	Claims *services.ClaimService
}

// constructor
func NewClaimController(cs *services.ClaimService) *ClaimController {
	return &ClaimController{Claims: cs}
}

func claimErrorStatus(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindLocked:
		return http.StatusLocked
	case services.KindBusy:
		return http.StatusServiceUnavailable
	case services.KindAlreadyClaimed,
		services.KindRecipeTaken,
		services.KindDessertCapReached,
		services.KindVegetarianQuotaAdvisory,
		services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondClaimError keeps every denial reason distinguishable on the
// wire: kind + message, never a bare boolean.
func respondClaimError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	if kind == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(claimErrorStatus(kind), gin.H{"error": err.Error(), "kind": kind})
}

func (cc *ClaimController) GetSnapshot(c *gin.Context) {
	snap, err := cc.Claims.GetSnapshot(c.Param("id"))
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (cc *ClaimController) Claim(c *gin.Context) {
	var body struct {
		RecipeID string `json:"recipe_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	snap, err := cc.Claims.Claim(c.Param("id"), uid, body.RecipeID)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (cc *ClaimController) Unclaim(c *gin.Context) {
	uid := c.GetUint("userID")

	snap, err := cc.Claims.Unclaim(c.Param("id"), uid, c.Param("claimId"))
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Switch swaps the guest's dish in one shot; the old recipe frees up and
// the new one is taken with no gap in between.
func (cc *ClaimController) Switch(c *gin.Context) {
	var body struct {
		RecipeID string `json:"recipe_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	snap, err := cc.Claims.Switch(c.Param("id"), uid, body.RecipeID)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (cc *ClaimController) Suggest(c *gin.Context) {
	var payload services.SuggestionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	snap, err := cc.Claims.Suggest(c.Param("id"), uid, payload)
	if err != nil {
		respondClaimError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (cc *ClaimController) Activity(c *gin.Context) {
	rows, err := services.ListMenuActivity(config.DB, c.Param("id"), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
