// Package service contains business logic shared by the HTTP handlers.
package service

import (
	"context"

	"reconnect/internal/models"
	"reconnect/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	requestRepo repository.FriendRequestRepository
	userRepo    repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(requestRepo repository.FriendRequestRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// SendRequest sends a friend request from userID to targetUserID.
// At most one request may exist per user pair regardless of direction.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("You cannot send a request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.requestRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendRequestStatusAccepted:
			return nil, models.NewConflictError("You are already connected with this user")
		case models.FriendRequestStatusPending:
			if existing.SenderID == userID {
				return nil, models.NewConflictError("Request already sent")
			}
			return nil, models.NewConflictError("This user has already sent you a request")
		}
	}

	request := &models.FriendRequest{
		SenderID:    userID,
		RecipientID: targetUserID,
		Status:      models.FriendRequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.requestRepo.GetByID(ctx, request.ID)
}

// AcceptRequest accepts a pending friend request addressed to userID.
// The request transitions to accepted in place and becomes the
// friendship edge; it disappears from incoming and outgoing listings,
// which only show pending requests.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RecipientID != userID {
		return nil, models.NewUnauthorizedError("You can only accept requests sent to you")
	}

	if request.Status != models.FriendRequestStatusPending {
		return nil, models.NewConflictError("Request is not pending")
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.FriendRequestStatusAccepted); err != nil {
		return nil, err
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

// GetFriends returns the users connected to userID.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.requestRepo.GetFriends(ctx, userID)
}

// GetIncoming returns pending requests addressed to userID.
func (s *FriendService) GetIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requestRepo.GetIncoming(ctx, userID)
}

// GetOutgoing returns pending requests sent by userID.
func (s *FriendService) GetOutgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requestRepo.GetOutgoing(ctx, userID)
}

// GetAccepted returns requests sent by userID that were accepted.
func (s *FriendService) GetAccepted(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.requestRepo.GetAccepted(ctx, userID)
}
