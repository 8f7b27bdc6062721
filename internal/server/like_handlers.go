package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikeActivity handles POST /api/activities/:id/like
// @Summary Like an activity
// @Description Like an activity; liking twice is a no-op success
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 201 {object} models.Activity
// @Failure 404 {object} models.ErrorResponse
// @Router /activities/{id}/like [post]
func (s *Server) LikeActivity(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	activityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	activity, err := s.likeService.Like(c.UserContext(), userID, activityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// UnlikeActivity handles DELETE /api/activities/:id/like
// @Summary Unlike an activity
// @Description Remove a like; unliking something never liked is a no-op success
// @Tags likes
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /activities/{id}/like [delete]
func (s *Server) UnlikeActivity(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	activityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.likeService.Unlike(c.UserContext(), userID, activityID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetActivityLikes handles GET /api/activities/:id/likes
// @Summary List users who liked an activity
// @Description Get a page of likers, newest first
// @Tags likes
// @Produce json
// @Param id path int true "Activity ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} object{users=[]repository.Liker,total=int,limit=int,offset=int,has_next=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /activities/{id}/likes [get]
func (s *Server) GetActivityLikes(c *fiber.Ctx) error {
	activityID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	likers, total, err := s.likeService.ListLikers(c.UserContext(), activityID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":    likers,
		"total":    total,
		"limit":    p.Limit,
		"offset":   p.Offset,
		"has_next": int64(p.Offset+p.Limit) < total,
	})
}
