package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"feedapp/backend/internal/database"
	"feedapp/backend/internal/hub"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errPostNotFound = errors.New("post not found")

// InlineLikeInput is the like side channel carried by a POST to the friends feed.
type InlineLikeInput struct {
	Like uint `json:"like" binding:"required"`
}

// applyLike inserts a like for (post, user) only if none exists yet and
// returns the resulting like count. A repeated like is a no-op success;
// the unique index catches the race where two requests pass the existence
// check at the same time.
func applyLike(postID, userID uint) (int64, error) {
	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errPostNotFound
		}
		return 0, err
	}

	var existing int64
	if err := database.DB.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&existing).Error; err != nil {
		return 0, err
	}

	if existing == 0 {
		like := models.Like{PostID: postID, UserID: userID}
		if err := database.DB.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, err
		}
	}

	var count int64
	if err := database.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// renderFriendsFeed writes the caller's friends feed: posts authored by the
// members of the caller's friend set, newest first, with engagement counts.
func renderFriendsFeed(c *gin.Context, viewerID uint) {
	page, limit := parsePageLimit(c)
	offset := (page - 1) * limit

	profile, err := getOrCreateProfile(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	friends, err := friendUsers(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load friends"})
		return
	}

	if len(friends) == 0 {
		c.JSON(http.StatusOK, NewPaginatedResponse([]PostResponse{}, 0, page, limit))
		return
	}

	friendIDs := make([]uint, 0, len(friends))
	for _, f := range friends {
		friendIDs = append(friendIDs, f.ID)
	}

	var totalItems int64
	if err := database.DB.Model(&models.Post{}).Where("user_id IN ?", friendIDs).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("User").
		Where("user_id IN ?", friendIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, buildPostResponse(post, viewerID))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetFriendsFeed godoc
// @Summary      Get the friends feed
// @Description  Returns posts authored by the caller's friends, newest first, annotated with engagement counts.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /feed/friends [get]
func GetFriendsFeed(c *gin.Context) {
	userID, _ := c.Get("userID")
	renderFriendsFeed(c, userID.(uint))
}

// LikeFromFriendsFeed godoc
// @Summary      Like a post from the friends feed
// @Description  Applies a like for the given post (no-op if already liked), then returns the friends feed.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body InlineLikeInput true "Post ID to like"
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /feed/friends [post]
func LikeFromFriendsFeed(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input InlineLikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := applyLike(input.Like, userID.(uint)); err != nil {
		if errors.Is(err, errPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	renderFriendsFeed(c, userID.(uint))
}

// LikePost godoc
// @Summary      Like a post
// @Description  Likes a post for the caller. Liking an already-liked post is a no-op.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{} "{"liked": true, "like_count": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/like [post]
func LikePost(c *gin.Context) {
	userID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	count, err := applyLike(uint(postID), userID.(uint))
	if err != nil {
		if errors.Is(err, errPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true, "like_count": count})
}

// StreamFeedEvents godoc
// @Summary      Stream feed events
// @Description  Server-sent events stream; emits a new_post event whenever one of the caller's friends posts.
// @Tags         feed
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  ErrorResponse
// @Router       /feed/events [get]
func StreamFeedEvents(c *gin.Context) {
	userID, _ := c.Get("userID")

	client := make(hub.Client, 8)
	hub.GlobalHub.Subscribe(userID.(uint), client)
	defer hub.GlobalHub.Unsubscribe(userID.(uint), client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
