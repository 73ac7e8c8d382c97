// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"strings"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/accounts/users?search=...&ordering=...
// Authenticated viewers are excluded from their own listing.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	users, total, err := s.userService.ListUsers(c.Context(), service.ListUsersInput{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
		ViewerID: viewerID,
		Limit:    page.PageSize,
		Offset:   page.Offset,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(pageOf(c, page, total, users))
}

// GetUser handles GET /api/accounts/:userId
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	user, svcErr := s.userService.GetUser(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(user)
}

// GetMyProfile handles GET /api/accounts/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/accounts/profile.
// Omitted fields keep their current value.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username       *string `json:"username"`
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Bio            *string `json:"bio"`
		ProfilePicture *string `json:"profile_picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         userID,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(user)
}

// GetFollowers handles GET /api/accounts/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	users, total, svcErr := s.userService.Followers(c.Context(), id, viewerID, page.PageSize, page.Offset)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(pageOf(c, page, total, users))
}

// GetFollowing handles GET /api/accounts/:userId/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	users, total, svcErr := s.userService.Following(c.Context(), id, viewerID, page.PageSize, page.Offset)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(pageOf(c, page, total, users))
}
