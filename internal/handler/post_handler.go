package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"feedapp/backend/internal/config"
	"feedapp/backend/internal/database"
	"feedapp/backend/internal/hub"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDescriptionLength = 255

// region --- DTOs ---

// PostResponse is a post annotated with its engagement counts.
type PostResponse struct {
	ID           uint        `json:"id"`
	Description  string      `json:"description"`
	ImageURL     string      `json:"image_url,omitempty"`
	Author       UserSummary `json:"author"`
	CreatedAt    time.Time   `json:"created_at"`
	CommentCount int64       `json:"comment_count"`
	LikeCount    int64       `json:"like_count"`
	Liked        bool        `json:"liked"`
}

// endregion

// buildPostResponse annotates a post with comment/like counts and whether
// the viewer has liked it. Expects post.User to be preloaded.
func buildPostResponse(post models.Post, viewerID uint) PostResponse {
	var commentCount, likeCount, viewerLikes int64
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	database.DB.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, viewerID).Count(&viewerLikes)

	return PostResponse{
		ID:           post.ID,
		Description:  post.Description,
		ImageURL:     post.ImagePath,
		Author:       UserSummary{ID: post.User.ID, Nickname: post.User.Nickname},
		CreatedAt:    post.CreatedAt,
		CommentCount: commentCount,
		LikeCount:    likeCount,
		Liked:        viewerLikes > 0,
	}
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Creates a post from a multipart form with an optional image upload.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        description formData string false "Post description"
// @Param        image       formData file   false "Image file"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	userID, _ := c.Get("userID")

	description := c.PostForm("description")
	if len(description) > maxDescriptionLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description too long"})
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		filename := uuid.NewString() + filepath.Ext(file.Filename)
		dst := filepath.Join(config.AppConfig.UploadDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		imagePath = "/uploads/" + filename
	}

	post := models.Post{
		UserID:      userID.(uint),
		Description: description,
		ImagePath:   imagePath,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("User").First(&post, post.ID)
	response := buildPostResponse(post, userID.(uint))

	// Let any friends currently streaming their feed know about the post.
	notifyFriendsOfPost(post.UserID, response)

	c.JSON(http.StatusCreated, response)
}

// notifyFriendsOfPost broadcasts a new_post event to every friend of the author.
func notifyFriendsOfPost(authorID uint, post PostResponse) {
	var profile models.Profile
	if err := database.DB.Where("user_id = ?", authorID).First(&profile).Error; err != nil {
		return
	}

	var friends []models.User
	if err := database.DB.Model(&profile).Association("Friends").Find(&friends); err != nil {
		return
	}

	event := hub.Event{Type: "new_post", Payload: post}
	for _, friend := range friends {
		hub.GlobalHub.Broadcast(friend.ID, event)
	}
}

// GetMyFeed godoc
// @Summary      Get own feed
// @Description  Returns the caller's own posts, newest first, annotated with engagement counts.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /feed/me [get]
func GetMyFeed(c *gin.Context) {
	userID, _ := c.Get("userID")
	page, limit := parsePageLimit(c)
	offset := (page - 1) * limit

	var totalItems int64
	if err := database.DB.Model(&models.Post{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, buildPostResponse(post, userID.(uint)))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}
