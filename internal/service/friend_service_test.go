package service

import (
	"context"
	"errors"
	"testing"

	"reconnect/internal/models"
)

type friendRepoStub struct {
	createFn          func(context.Context, *models.FriendRequest) error
	getByIDFn         func(context.Context, uint) (*models.FriendRequest, error)
	getBetweenUsersFn func(context.Context, uint, uint) (*models.FriendRequest, error)
	getFriendsFn      func(context.Context, uint) ([]models.User, error)
	getIncomingFn     func(context.Context, uint) ([]models.FriendRequest, error)
	getOutgoingFn     func(context.Context, uint) ([]models.FriendRequest, error)
	getAcceptedFn     func(context.Context, uint) ([]models.FriendRequest, error)
	updateStatusFn    func(context.Context, uint, models.FriendRequestStatus) error
	deleteFn          func(context.Context, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, request *models.FriendRequest) error {
	return s.createFn(ctx, request)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getBetweenUsersFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) GetIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getIncomingFn(ctx, userID)
}
func (s *friendRepoStub) GetOutgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getOutgoingFn(ctx, userID)
}
func (s *friendRepoStub) GetAccepted(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getAcceptedFn(ctx, userID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error {
	return s.updateStatusFn(ctx, requestID, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, requestID uint) error {
	return s.deleteFn(ctx, requestID)
}

type userRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getByEmailFn  func(context.Context, string) (*models.User, error)
	createFn      func(context.Context, *models.User) error
	updateFn      func(context.Context, *models.User) error
	deleteFn      func(context.Context, uint) error
	listFn        func(context.Context, int, int) ([]models.User, error)
	recommendedFn func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Recommended(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.recommendedFn(ctx, userID, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:     func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:  func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:      func(context.Context, *models.User) error { return nil },
		updateFn:      func(context.Context, *models.User) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		listFn:        func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		recommendedFn: func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:          func(context.Context, *models.FriendRequest) error { return nil },
		getByIDFn:         func(context.Context, uint) (*models.FriendRequest, error) { return &models.FriendRequest{}, nil },
		getBetweenUsersFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		getFriendsFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getIncomingFn:     func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		getOutgoingFn:     func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		getAcceptedFn:     func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		updateStatusFn:    func(context.Context, uint, models.FriendRequestStatus) error { return nil },
		deleteFn:          func(context.Context, uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestFriendServiceSendRequestSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo(), noopUserRepo())
	_, err := svc.SendRequest(context.Background(), 3, 3)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestFriendServiceSendRequestTargetMissing(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFriendService(noopFriendRepo(), users)
	_, err := svc.SendRequest(context.Background(), 1, 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestFriendServiceSendRequestDuplicate(t *testing.T) {
	tests := []struct {
		name     string
		existing *models.FriendRequest
	}{
		{
			name: "already sent",
			existing: &models.FriendRequest{
				ID: 7, SenderID: 1, RecipientID: 2,
				Status: models.FriendRequestStatusPending,
			},
		},
		{
			name: "already received",
			existing: &models.FriendRequest{
				ID: 7, SenderID: 2, RecipientID: 1,
				Status: models.FriendRequestStatusPending,
			},
		},
		{
			name: "already friends",
			existing: &models.FriendRequest{
				ID: 7, SenderID: 2, RecipientID: 1,
				Status: models.FriendRequestStatusAccepted,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopFriendRepo()
			repo.getBetweenUsersFn = func(context.Context, uint, uint) (*models.FriendRequest, error) {
				return tt.existing, nil
			}
			repo.createFn = func(context.Context, *models.FriendRequest) error {
				t.Fatal("Create should not be called for a duplicate request")
				return nil
			}

			svc := NewFriendService(repo, noopUserRepo())
			_, err := svc.SendRequest(context.Background(), 1, 2)
			assertAppErrorCode(t, err, "CONFLICT")
		})
	}
}

func TestFriendServiceSendRequestCreates(t *testing.T) {
	repo := noopFriendRepo()
	var created *models.FriendRequest
	repo.createFn = func(_ context.Context, request *models.FriendRequest) error {
		request.ID = 42
		created = request
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.FriendRequest, error) {
		if id != 42 {
			t.Fatalf("expected reload of request 42, got %d", id)
		}
		return created, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	request, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.SenderID != 1 || request.RecipientID != 2 {
		t.Fatalf("wrong request endpoints: %+v", request)
	}
	if request.Status != models.FriendRequestStatusPending {
		t.Fatalf("expected pending status, got %q", request.Status)
	}
}

func TestFriendServiceAcceptNotRecipient(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{
			ID: 5, SenderID: 10, RecipientID: 11,
			Status: models.FriendRequestStatusPending,
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptRequest(context.Background(), 12, 5)
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestFriendServiceAcceptSenderCannotAccept(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{
			ID: 5, SenderID: 10, RecipientID: 11,
			Status: models.FriendRequestStatusPending,
		}, nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptRequest(context.Background(), 10, 5)
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestFriendServiceAcceptNotPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{
			ID: 5, SenderID: 10, RecipientID: 11,
			Status: models.FriendRequestStatusAccepted,
		}, nil
	}
	repo.updateStatusFn = func(context.Context, uint, models.FriendRequestStatus) error {
		t.Fatal("UpdateStatus should not be called for a settled request")
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	_, err := svc.AcceptRequest(context.Background(), 11, 5)
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestFriendServiceAcceptTransitions(t *testing.T) {
	status := models.FriendRequestStatusPending
	repo := noopFriendRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.FriendRequest, error) {
		return &models.FriendRequest{
			ID: 5, SenderID: 10, RecipientID: 11,
			Status: status,
		}, nil
	}
	repo.updateStatusFn = func(_ context.Context, id uint, next models.FriendRequestStatus) error {
		if id != 5 {
			t.Fatalf("expected update of request 5, got %d", id)
		}
		status = next
		return nil
	}

	svc := NewFriendService(repo, noopUserRepo())
	request, err := svc.AcceptRequest(context.Background(), 11, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != models.FriendRequestStatusAccepted {
		t.Fatalf("expected accepted status, got %q", request.Status)
	}
}
