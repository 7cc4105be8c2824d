package server

import (
	"reconnect/internal/middleware"
	"reconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStreamToken handles GET /api/chat/token.
// Token generation failures are logged server-side and surface to the
// client as a generic internal error.
func (s *Server) GetStreamToken(c *fiber.Ctx) error {
	userID := currentUserID(c)

	token, err := s.streamTokens.Token(userID)
	if err != nil {
		middleware.StreamTokensIssued.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(c.UserContext(), "stream token generation failed",
			"error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.StreamTokensIssued.WithLabelValues("ok").Inc()

	return c.JSON(fiber.Map{
		"token":   token,
		"api_key": s.streamTokens.APIKey(),
	})
}
