// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/panjabighar/panjabi-backend/internal/models"
	"github.com/panjabighar/panjabi-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpsertUserRequest struct {
	Name        string                 `json:"name,omitempty"`
	Image       string                 `json:"image,omitempty"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type ResolveElevationRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=customer seller admin"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpsertOnFirstContact stores a user the first time an email is seen and
// returns the existing record unchanged on every later call. The role always
// starts as customer; elevation goes through the request/resolve workflow.
func (s *UserService) UpsertOnFirstContact(email string, req *UpsertUserRequest) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Email:  email,
		Role:   models.RoleCustomer,
		Status: models.UserStatusNone,
	}
	if req != nil {
		user.Name = req.Name
		user.Image = req.Image
		user.ProfileData = models.JSONB(req.ProfileData)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// RequestElevation marks the user as waiting for an admin decision. A user
// with a pending request cannot request again until an admin resolves it.
func (s *UserService) RequestElevation(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: you have already requested, wait for some time", ErrConflict)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.Status == models.UserStatusRequested {
		return fmt.Errorf("%w: you have already requested, wait for some time", ErrConflict)
	}

	if err := s.db.Model(&user).Update("status", models.UserStatusRequested).Error; err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// ResolveElevation is the admin's single-step decision: the role is
// overwritten and the status becomes Verified. Changing again requires a
// fresh request.
func (s *UserService) ResolveElevation(email string, req *ResolveElevationRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"role":   req.Role,
		"status": models.UserStatusVerified,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	user.Role = req.Role
	user.Status = models.UserStatusVerified
	return &user, nil
}

// GetRole is a public read used by clients to branch UI. Unknown emails
// yield an empty role rather than an error.
func (s *UserService) GetRole(email string) (models.Role, error) {
	var user models.User
	if err := s.db.Select("role").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("database error: %w", err)
	}
	return user.Role, nil
}

// ListOthers returns every user except the caller, for the admin dashboard.
func (s *UserService) ListOthers(email string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("email <> ?", email).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return users, nil
}
