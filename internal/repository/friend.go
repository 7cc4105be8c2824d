package repository

import (
	"context"
	"errors"

	"reconnect/internal/models"

	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for friend request data operations
type FriendRequestRepository interface {
	Create(ctx context.Context, request *models.FriendRequest) error
	GetByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	GetOutgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	GetAccepted(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error
	Delete(ctx context.Context, requestID uint) error
}

// friendRequestRepository implements FriendRequestRepository
type friendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRequestRepository) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRequestRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var request models.FriendRequest

	// Find a request where the users appear as sender/recipient in either order
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Preload("Sender").
		Preload("Recipient").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No request exists
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRequestRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User

	// A friendship is an accepted request; return the other user of each edge
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friend_requests fr ON (users.id = fr.sender_id OR users.id = fr.recipient_id)").
		Where("fr.status = ? AND (fr.sender_id = ? OR fr.recipient_id = ?) AND users.id <> ?",
			models.FriendRequestStatusAccepted, userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return users, nil
}

func (r *friendRequestRepository) GetIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest

	// Pending requests where the user is the recipient
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Preload("Sender").
		Preload("Recipient").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *friendRequestRepository) GetOutgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest

	// Pending requests where the user is the sender; accepted requests
	// leave this listing because they are filtered on status here.
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Preload("Sender").
		Preload("Recipient").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

// GetAccepted returns accepted requests the user sent, newest first. The
// notifications view uses this to show who accepted the user's invitations.
func (r *friendRequestRepository) GetAccepted(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest

	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusAccepted).
		Preload("Recipient").
		Order("updated_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *friendRequestRepository) UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRequestRepository) Delete(ctx context.Context, requestID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, requestID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
