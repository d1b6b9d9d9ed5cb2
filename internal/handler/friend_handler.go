package handler

import (
	"errors"
	"net/http"
	"time"

	"feedapp/backend/internal/config"
	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// ReceivedRequestResponse is a pending friend request addressed to the caller.
type ReceivedRequestResponse struct {
	EdgeID    uint        `json:"edge_id"`
	Sender    UserSummary `json:"sender"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// FriendsOverviewResponse is everything the friend-management view shows:
// current friends, requests the caller has sent, requests awaiting the
// caller's decision, and the users a new request could go to.
type FriendsOverviewResponse struct {
	Friends            []UserSummary             `json:"friends"`
	PendingSent        []UserSummary             `json:"pending_sent"`
	PendingReceived    []ReceivedRequestResponse `json:"pending_received"`
	EligibleRecipients []UserSummary             `json:"eligible_recipients"`
}

// SendFriendRequestsInput carries the target user IDs for new requests.
type SendFriendRequestsInput struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

// AcceptFriendRequestsInput carries the edge IDs of received requests to accept.
type AcceptFriendRequestsInput struct {
	EdgeIDs []uint `json:"edge_ids" binding:"required,min=1"`
}

// endregion

// friendUsers returns the members of a profile's friend set.
func friendUsers(profile models.Profile) ([]models.User, error) {
	var friends []models.User
	err := database.DB.Model(&profile).Association("Friends").Find(&friends)
	return friends, err
}

// ensureBootstrapEdge creates the one-time welcome request: the first time a
// user visits the friends page (no edge ever sent by them) a pending request
// goes out to the configured welcome account. That edge is never accepted
// automatically, so it adds no friendship by itself.
func ensureBootstrapEdge(profile models.Profile) error {
	if profile.UserID == config.AppConfig.WelcomeUserID {
		return nil
	}

	var sentCount int64
	if err := database.DB.Model(&models.RelationshipEdge{}).Where("sender_id = ?", profile.ID).Count(&sentCount).Error; err != nil {
		return err
	}
	if sentCount > 0 {
		return nil
	}

	var welcomeUser models.User
	if err := database.DB.First(&welcomeUser, config.AppConfig.WelcomeUserID).Error; err != nil {
		// No welcome account provisioned; nothing to bootstrap.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	welcomeProfile, err := getOrCreateProfile(welcomeUser.ID)
	if err != nil {
		return err
	}

	edge := models.RelationshipEdge{
		SenderID:   profile.ID,
		ReceiverID: welcomeProfile.ID,
		Status:     models.StatusSent,
	}
	if err := database.DB.Create(&edge).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return nil
}

// GetFriendsOverview godoc
// @Summary      Get the friend-management view
// @Description  Returns current friends, pending sent and received requests, and eligible recipients. Creates the welcome bootstrap request on first visit.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FriendsOverviewResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func GetFriendsOverview(c *gin.Context) {
	userID, _ := c.Get("userID")

	profile, err := getOrCreateProfile(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	if err := ensureBootstrapEdge(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize relationships"})
		return
	}

	friends, err := friendUsers(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	// Requests the caller has sent that are still pending.
	var sentEdges []models.RelationshipEdge
	if err := database.DB.Preload("Receiver.User").
		Where("sender_id = ? AND status = ?", profile.ID, models.StatusSent).
		Find(&sentEdges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sent requests"})
		return
	}

	// Requests addressed to the caller awaiting a decision.
	var receivedEdges []models.RelationshipEdge
	if err := database.DB.Preload("Sender.User").
		Where("receiver_id = ? AND status = ?", profile.ID, models.StatusSent).
		Find(&receivedEdges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load received requests"})
		return
	}

	// Eligible recipients: everyone except the caller, their friends, and
	// anyone already the receiver of one of the caller's pending requests.
	excludedIDs := []uint{profile.UserID}
	for _, f := range friends {
		excludedIDs = append(excludedIDs, f.ID)
	}
	for _, e := range sentEdges {
		excludedIDs = append(excludedIDs, e.Receiver.UserID)
	}

	var eligible []models.User
	if err := database.DB.Where("id NOT IN ?", excludedIDs).Find(&eligible).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load eligible recipients"})
		return
	}

	response := FriendsOverviewResponse{
		Friends:            make([]UserSummary, 0, len(friends)),
		PendingSent:        make([]UserSummary, 0, len(sentEdges)),
		PendingReceived:    make([]ReceivedRequestResponse, 0, len(receivedEdges)),
		EligibleRecipients: make([]UserSummary, 0, len(eligible)),
	}
	for _, f := range friends {
		response.Friends = append(response.Friends, UserSummary{ID: f.ID, Nickname: f.Nickname})
	}
	for _, e := range sentEdges {
		response.PendingSent = append(response.PendingSent, UserSummary{ID: e.Receiver.UserID, Nickname: e.Receiver.User.Nickname})
	}
	for _, e := range receivedEdges {
		response.PendingReceived = append(response.PendingReceived, ReceivedRequestResponse{
			EdgeID:    e.ID,
			Sender:    UserSummary{ID: e.Sender.UserID, Nickname: e.Sender.User.Nickname},
			Status:    string(e.Status),
			CreatedAt: e.CreatedAt,
		})
	}
	for _, u := range eligible {
		response.EligibleRecipients = append(response.EligibleRecipients, UserSummary{ID: u.ID, Nickname: u.Nickname})
	}

	c.JSON(http.StatusOK, response)
}

// SendFriendRequests godoc
// @Summary      Send friend requests
// @Description  Creates a pending request to each target user. Targets that already have a pending request from the caller are skipped.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestsInput true "Target user IDs"
// @Success      201  {object}  map[string]string "{"message": "Requests sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /friends/requests [post]
func SendFriendRequests(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input SendFriendRequestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := getOrCreateProfile(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	for _, targetID := range input.UserIDs {
		if targetID == userID.(uint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a request to yourself"})
			return
		}

		var target models.User
		if err := database.DB.First(&target, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}

		targetProfile, err := getOrCreateProfile(target.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load target profile"})
			return
		}

		// A repeated send to the same target is a no-op, not a duplicate edge.
		var pending int64
		database.DB.Model(&models.RelationshipEdge{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ?", profile.ID, targetProfile.ID, models.StatusSent).
			Count(&pending)
		if pending > 0 {
			continue
		}

		edge := models.RelationshipEdge{
			SenderID:   profile.ID,
			ReceiverID: targetProfile.ID,
			Status:     models.StatusSent,
		}
		if err := database.DB.Create(&edge).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Requests sent"})
}

// AcceptFriendRequests godoc
// @Summary      Accept friend requests
// @Description  Accepts pending requests addressed to the caller and updates both friend sets symmetrically.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AcceptFriendRequestsInput true "Edge IDs to accept"
// @Success      200  {object}  map[string]string "{"message": "Requests accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/accept [post]
func AcceptFriendRequests(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input AcceptFriendRequestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := getOrCreateProfile(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	var viewerUser models.User
	if err := database.DB.First(&viewerUser, profile.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	for _, edgeID := range input.EdgeIDs {
		var edge models.RelationshipEdge
		if err := database.DB.Preload("Sender").
			Where("id = ? AND receiver_id = ? AND status = ?", edgeID, profile.ID, models.StatusSent).
			First(&edge).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
			return
		}

		var senderUser models.User
		if err := database.DB.First(&senderUser, edge.Sender.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
			return
		}

		// Flip the edge and insert both directions of the friendship in
		// one transaction so the symmetry invariant holds.
		tx := database.DB.Begin()

		if err := tx.Model(&edge).Update("status", models.StatusAccepted).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// An accepted edge between this pair already exists; the
				// friendship is already in place.
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
			return
		}

		if err := tx.Model(&profile).Association("Friends").Append(&senderUser); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friends"})
			return
		}

		senderProfile := edge.Sender
		if err := tx.Model(&senderProfile).Association("Friends").Append(&viewerUser); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friends"})
			return
		}

		tx.Commit()
	}

	c.JSON(http.StatusOK, gin.H{"message": "Requests accepted"})
}
