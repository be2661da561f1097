package controllers

import (
	"net/http"
	"strings"

	"backend/config"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"email":                user.Email,
		"name":                 user.Name,
		"avatar_url":           user.AvatarURL,
		"dietary_restrictions": user.DietaryList(),
		"role":                 user.Role,
	})
}

func UpdateProfile(c *gin.Context) {
	var body struct {
		Name                string   `json:"name" binding:"required"`
		DietaryRestrictions []string `json:"dietary_restrictions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	user, err := services.UpdateProfile(uid, body.Name, body.DietaryRestrictions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                 user.Name,
		"dietary_restrictions": user.DietaryList(),
	})
}

// UploadAvatar takes a base64 data URL, runs it past content
// moderation, then stores it on S3 and saves the public URL.
func UploadAvatar(c *gin.Context) {
	var body struct {
		Image string `json:"image" binding:"required"` // "data:image/...;base64,..."
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetUint("userID")

	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
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
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "image rejected: " + strings.Join(flagged, ", "),
		})
		return
	}

	url, err := utils.UploadImageToS3(imageData, contentType, "avatars", user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user.AvatarURL = url
	config.DB.Save(user)

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
