package handler

import (
	"net/http"
	"time"

	"feedapp/backend/internal/database"
	"feedapp/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminUserResponse is the admin view of an account.
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Admin-only paginated listing of all accounts, with optional nickname search.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string false "Search query for nickname"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[AdminUserResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/users [get]
func ListUsers(c *gin.Context) {
	page, limit := parsePageLimit(c)
	searchQuery := c.Query("q")

	query := database.DB.Model(&models.User{})
	if searchQuery != "" {
		query = query.Where("LOWER(nickname) LIKE LOWER(?)", "%"+searchQuery+"%")
	}

	result, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]AdminUserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		response = append(response, AdminUserResponse{
			ID:        user.ID,
			Nickname:  user.Nickname,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, result.Meta.TotalItems, page, limit))
}
