package server

import (
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetActivityFeed handles GET /api/activity-feed
// @Summary Get activity feed
// @Description Get activities from followed users, newest first
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by activity type (trip_published, photo_uploaded, achievement_unlocked)"
// @Param sort query string false "Sort order: recent (default) or popular"
// @Param limit query int false "Page size (default 20, max 50)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} service.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /activity-feed [get]
func (s *Server) GetActivityFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.feedService.GetFeed(c.UserContext(), service.GetFeedInput{
		ViewerID: userID,
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		Limit:    c.QueryInt("limit", 0),
		Cursor:   c.Query("cursor"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// AppendActivity handles POST /api/activities
// @Summary Record an activity
// @Description Append an activity referencing an entity owned by the caller
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{type=string,ref_id=int} true "Activity to record"
// @Success 201 {object} models.Activity
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /activities [post]
func (s *Server) AppendActivity(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Type  string `json:"type"`
		RefID uint   `json:"ref_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	activity, err := s.activityService.Append(c.UserContext(), service.AppendActivityInput{
		UserID: userID,
		Type:   models.ActivityType(req.Type),
		RefID:  req.RefID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// GetActivity handles GET /api/activities/:id
// @Summary Get a single activity
// @Description Get one activity with counts and enriched metadata
// @Tags feed
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} service.ActivityView
// @Failure 404 {object} models.ErrorResponse
// @Router /activities/{id} [get]
func (s *Server) GetActivity(c *fiber.Ctx) error {
	activityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	view, err := s.feedService.GetActivity(c.UserContext(), activityID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}
