package server

import (
	"reconnect/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/users/friend-request/:id
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	targetUserID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.friendService.SendRequest(ctx, userID, targetUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FriendRequestsSent.Inc()

	// Notify the recipient so their UI updates immediately. Rollout of
	// the notification fan-out is controlled per recipient.
	if s.notifier != nil && s.flags.EnabledOrDefault("friend_request_notifications", request.RecipientID, true) {
		if notifyErr := s.notifier.RequestReceived(ctx,
			request.RecipientID, request.SenderID, request.Sender.FullName, request.ID); notifyErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "friend request notification failed",
				"error", notifyErr)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// AcceptFriendRequest handles PUT /api/users/friend-request/:id/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.friendService.AcceptRequest(ctx, userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.FriendRequestsAccepted.Inc()

	if s.notifier != nil && s.flags.EnabledOrDefault("friend_request_notifications", request.SenderID, true) {
		if notifyErr := s.notifier.RequestAccepted(ctx,
			request.SenderID, request.RecipientID, request.Recipient.FullName, request.ID); notifyErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "friend accept notification failed",
				"error", notifyErr)
		}
	}

	return c.JSON(request)
}

// GetFriendRequests handles GET /api/users/friend-requests.
// Returns the pending requests addressed to the user together with the
// user's own requests that were recently accepted, so the client can
// show both kinds of notification in one view.
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	incoming, err := s.friendService.GetIncoming(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	accepted, err := s.friendService.GetAccepted(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"incoming_requests": incoming,
		"accepted_requests": accepted,
	})
}

// GetOutgoingFriendRequests handles GET /api/users/outgoing-friend-requests
func (s *Server) GetOutgoingFriendRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetOutgoing(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}
