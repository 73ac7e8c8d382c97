// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/accounts/follow/:userId.
// A fresh edge answers 201; following someone you already follow answers 200.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	created, svcErr := s.userService.FollowUser(c.Context(), userID, targetID)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !created {
		middleware.ToggleNoops.WithLabelValues("follow", "create").Inc()
		return c.JSON(fiber.Map{
			"status":  "already following",
			"message": "You are already following this user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "followed",
		"message": "You are now following this user",
	})
}

// UnfollowUser handles DELETE /api/accounts/follow/:userId.
// Removing an edge that never existed answers 404.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	deleted, svcErr := s.userService.UnfollowUser(c.Context(), userID, targetID)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !deleted {
		middleware.ToggleNoops.WithLabelValues("follow", "delete").Inc()
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Follow", targetID))
	}

	return c.JSON(fiber.Map{
		"status":  "unfollowed",
		"message": "You have unfollowed this user",
	})
}
