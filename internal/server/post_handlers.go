// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
		Image   string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed handles GET /api/posts.
// Anonymous viewers get liked_by_me and retweeted_by_me as false.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	posts, total, err := s.postService.Feed(c.Context(), viewerID, page.PageSize, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(pageOf(c, page, total, posts))
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	posts, total, err := s.postService.SearchPosts(c.Context(), c.Query("q"), viewerID, page.PageSize, page.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(pageOf(c, page, total, posts))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, svcErr := s.postService.GetPost(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/accounts/:userId/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	page := s.parsePagination(c)

	posts, total, svcErr := s.postService.UserPosts(c.Context(), id, viewerID, page.PageSize, page.Offset)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(pageOf(c, page, total, posts))
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string  `json:"content"`
		Image   *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, svcErr := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  userID,
		PostID:  id,
		Content: req.Content,
		Image:   req.Image,
	})
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: id,
	}); svcErr != nil {
		return respondAppError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"message": "Post deleted successfully",
	})
}

// LikePost handles POST /api/posts/:id/like.
// A fresh like answers 201; liking an already-liked post answers 200.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, svcErr := s.postService.LikePost(c.Context(), userID, id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !created {
		middleware.ToggleNoops.WithLabelValues("like", "create").Inc()
		return c.JSON(fiber.Map{
			"status":  "already liked",
			"message": "You have already liked this post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "liked",
		"message": "Post liked",
	})
}

// UnlikePost handles DELETE /api/posts/:id/like.
// Removing a like that never existed answers 404.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deleted, svcErr := s.postService.UnlikePost(c.Context(), userID, id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !deleted {
		middleware.ToggleNoops.WithLabelValues("like", "delete").Inc()
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Like", id))
	}

	return c.JSON(fiber.Map{
		"status":  "unliked",
		"message": "Like removed",
	})
}

// RetweetPost handles POST /api/posts/:id/retweet
func (s *Server) RetweetPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, svcErr := s.postService.RetweetPost(c.Context(), userID, id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !created {
		middleware.ToggleNoops.WithLabelValues("retweet", "create").Inc()
		return c.JSON(fiber.Map{
			"status":  "already retweeted",
			"message": "You have already retweeted this post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "retweeted",
		"message": "Post retweeted",
	})
}

// UnretweetPost handles DELETE /api/posts/:id/retweet
func (s *Server) UnretweetPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deleted, svcErr := s.postService.UnretweetPost(c.Context(), userID, id)
	if svcErr != nil {
		return respondAppError(c, svcErr)
	}

	if !deleted {
		middleware.ToggleNoops.WithLabelValues("retweet", "delete").Inc()
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Retweet", id))
	}

	return c.JSON(fiber.Map{
		"status":  "unretweeted",
		"message": "Retweet removed",
	})
}
