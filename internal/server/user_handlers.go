package server

import (
	"reconnect/internal/models"
	"reconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecommendedUsers handles GET /api/users
func (s *Server) GetRecommendedUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, err := s.userService.Recommended(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetFriends handles GET /api/users/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetFriends(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(friends)
}
