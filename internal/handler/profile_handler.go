package handler

import (
	"errors"
	"net/http"
	"time"

	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// ProfileInput defines the editable profile fields.
type ProfileInput struct {
	FirstName string `json:"first_name" example:"Jane"`
	LastName  string `json:"last_name" example:"Doe"`
	Email     string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
	DOB       string `json:"dob" binding:"omitempty,datetime=2006-01-02" example:"1990-04-21"`
	Bio       string `json:"bio" example:"Hello there"`
}

// ProfileResponse defines the structure for a user's profile.
type ProfileResponse struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Nickname  string        `json:"nickname"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	DOB       string        `json:"dob,omitempty"`
	Bio       string        `json:"bio"`
	Friends   []UserSummary `json:"friends"`
}

// UserSummary is the minimal public view of a user.
type UserSummary struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
}

// endregion

// getOrCreateProfile returns the profile for a user, creating an empty one
// if none exists yet. Idempotent.
func getOrCreateProfile(userID uint) (models.Profile, error) {
	var profile models.Profile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		err = database.DB.Create(&profile).Error
	}
	return profile, err
}

func newProfileResponse(profile models.Profile, user models.User, friends []models.User) ProfileResponse {
	friendSummaries := make([]UserSummary, 0, len(friends))
	for _, f := range friends {
		friendSummaries = append(friendSummaries, UserSummary{ID: f.ID, Nickname: f.Nickname})
	}

	dob := ""
	if profile.DOB != nil {
		dob = profile.DOB.Format("2006-01-02")
	}

	return ProfileResponse{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Nickname:  user.Nickname,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		DOB:       dob,
		Bio:       profile.Bio,
		Friends:   friendSummaries,
	}
}

// GetMyProfile godoc
// @Summary      Get own profile
// @Description  Returns the caller's profile, creating an empty one on first access.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /profile/me [get]
func GetMyProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	profile, err := getOrCreateProfile(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, profile.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var friends []models.User
	if err := database.DB.Model(&profile).Association("Friends").Find(&friends); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile, user, friends))
}

// UpdateMyProfile godoc
// @Summary      Update own profile
// @Description  Validates and persists profile fields onto the caller's own profile.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Profile fields"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/me [put]
func UpdateMyProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dob *time.Time
	if input.DOB != "" {
		parsed, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth"})
			return
		}
		if parsed.After(time.Now()) || parsed.Year() < 1900 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date of birth out of range"})
			return
		}
		dob = &parsed
	}

	profile, err := getOrCreateProfile(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Email = input.Email
	profile.DOB = dob
	profile.Bio = input.Bio

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var user models.User
	database.DB.First(&user, profile.UserID)

	var friends []models.User
	database.DB.Model(&profile).Association("Friends").Find(&friends)

	c.JSON(http.StatusOK, newProfileResponse(profile, user, friends))
}
