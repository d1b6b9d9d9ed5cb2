package handler

import (
	"net/http"
	"strconv"
	"time"

	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// CommentInput defines the structure for a new comment.
type CommentInput struct {
	Text string `json:"text" binding:"required" example:"Nice shot!"`
}

// CommentResponse is a single comment on a post.
type CommentResponse struct {
	ID        uint        `json:"id"`
	Text      string      `json:"text"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}

// PostCommentsResponse is a post together with its comments, oldest first.
type PostCommentsResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

// endregion

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    UserSummary{ID: comment.User.ID, Nickname: comment.User.Nickname},
		CreatedAt: comment.CreatedAt,
	}
}

// GetPostComments godoc
// @Summary      Get a post with its comments
// @Description  Returns the post, its engagement counts, and its comments oldest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  PostCommentsResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [get]
func GetPostComments(c *gin.Context) {
	userID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.Preload("User").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := PostCommentsResponse{
		Post:     buildPostResponse(post, userID.(uint)),
		Comments: make([]CommentResponse, 0, len(comments)),
	}
	for _, comment := range comments {
		response.Comments = append(response.Comments, newCommentResponse(comment))
	}

	c.JSON(http.StatusOK, response)
}

// AddComment godoc
// @Summary      Comment on a post
// @Description  Creates a comment on the given post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Post ID"
// @Param        input body CommentInput true "Comment text"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [post]
func AddComment(c *gin.Context) {
	userID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: userID.(uint),
		Text:   input.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
