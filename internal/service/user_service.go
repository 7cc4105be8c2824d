package service

import (
	"context"
	"strings"

	"reconnect/internal/models"
	"reconnect/internal/repository"
	"reconnect/internal/validation"
)

// OnboardInput carries the profile fields collected during onboarding.
// All fields are required.
type OnboardInput struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic"`
}

// UpdateProfileInput carries the editable profile fields. Unlike
// onboarding, bio and profile pic may be cleared.
type UpdateProfileInput struct {
	FullName         string `json:"full_name"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"native_language"`
	LearningLanguage string `json:"learning_language"`
	Location         string `json:"location"`
	ProfilePic       string `json:"profile_pic"`
}

// UserService provides profile and discovery business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Onboard completes a user's profile and marks them onboarded.
// Missing fields are reported together so the client can highlight
// every gap at once.
func (s *UserService) Onboard(ctx context.Context, userID uint, input OnboardInput) (*models.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Bio = strings.TrimSpace(input.Bio)
	input.NativeLanguage = strings.TrimSpace(input.NativeLanguage)
	input.LearningLanguage = strings.TrimSpace(input.LearningLanguage)
	input.Location = strings.TrimSpace(input.Location)

	var missing []string
	if input.FullName == "" {
		missing = append(missing, "full_name")
	}
	if input.Bio == "" {
		missing = append(missing, "bio")
	}
	if input.NativeLanguage == "" {
		missing = append(missing, "native_language")
	}
	if input.LearningLanguage == "" {
		missing = append(missing, "learning_language")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError(
			"All fields are required, missing: " + strings.Join(missing, ", "))
	}

	if err := validation.ValidateFullName(input.FullName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLanguage(input.NativeLanguage); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLanguage(input.LearningLanguage); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Bio = input.Bio
	user.NativeLanguage = input.NativeLanguage
	user.LearningLanguage = input.LearningLanguage
	user.Location = input.Location
	if input.ProfilePic != "" {
		user.ProfilePic = input.ProfilePic
	}
	user.IsOnboarded = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates an onboarded user's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.NativeLanguage = strings.TrimSpace(input.NativeLanguage)
	input.LearningLanguage = strings.TrimSpace(input.LearningLanguage)

	if input.FullName != "" {
		if err := validation.ValidateFullName(input.FullName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if input.NativeLanguage != "" {
		if err := validation.ValidateLanguage(input.NativeLanguage); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if input.LearningLanguage != "" {
		if err := validation.ValidateLanguage(input.LearningLanguage); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	user.Bio = strings.TrimSpace(input.Bio)
	if input.NativeLanguage != "" {
		user.NativeLanguage = input.NativeLanguage
	}
	if input.LearningLanguage != "" {
		user.LearningLanguage = input.LearningLanguage
	}
	user.Location = strings.TrimSpace(input.Location)
	user.ProfilePic = input.ProfilePic

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Recommended returns onboarded users the given user could connect
// with: not themselves, not already friends, and with no pending
// request in either direction.
func (s *UserService) Recommended(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.userRepo.Recommended(ctx, userID, limit, offset)
}
