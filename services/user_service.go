package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// ProfileUpdate lists the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	Phone     *string
	AvatarURL *string
}

// ClientCreate is the admin-initiated client creation input
type ClientCreate struct {
	Username  string
	Email     string
	Password  string
	Phone     string
	AvatarURL string
}

// ClientUpdate lists the fields an admin may change on a client
type ClientUpdate struct {
	Username    *string
	Email       *string
	Phone       *string
	AvatarURL   *string
	TotalOrders *int
	TotalSpent  *float64
	Password    *string
}

// UserService manages stored user records
type UserService struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost}
}

// GetByID loads a user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, utils.InternalError("Failed to load user", err)
	}
	return &user, nil
}

// UpdateProfile applies a self-service profile change
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" {
			user.Username = v
		}
	}
	if in.Email != nil {
		if err := s.applyEmail(ctx, user, *in.Email); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	utils.LogInfo("Profile updated for user %d", user.ID)
	return user, nil
}

// ListClients returns every user with the client role, newest first
func (s *UserService) ListClients(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleClient).
		Order("created_at DESC, id DESC").
		Find(&users).Error
	if err != nil {
		return nil, utils.InternalError("Failed to list clients", err)
	}
	return users, nil
}

// CreateClient creates a client account on behalf of an admin
func (s *UserService) CreateClient(ctx context.Context, in ClientCreate) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	if missing := utils.MissingFields([]string{"username", "email", "password"}, in.Username, in.Email, in.Password); len(missing) > 0 {
		return nil, utils.ValidationError("Username, email and password are required")
	}
	if valid, msg := utils.ValidateEmail(in.Email); !valid {
		return nil, utils.ValidationError(msg)
	}
	if valid, msg := utils.ValidatePassword(in.Password); !valid {
		return nil, utils.ValidationError(msg)
	}
	taken, err := emailTaken(ctx, s.db, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.DuplicateEmailError()
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, utils.InternalError("Failed to process password", err)
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Role:      models.RoleClient,
		Phone:     strings.TrimSpace(in.Phone),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.DuplicateEmailError()
		}
		return nil, utils.InternalError("Failed to create client", err)
	}
	utils.LogInfo("Client created by admin: id=%d email=%s", user.ID, user.Email)
	return user, nil
}

// UpdateClient applies an admin edit. A new password is only applied when it is
// long enough, shorter values are rejected.
func (s *UserService) UpdateClient(ctx context.Context, id uint, in ClientUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" {
			user.Username = v
		}
	}
	if in.Email != nil {
		if err := s.applyEmail(ctx, user, *in.Email); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.TotalOrders != nil {
		if *in.TotalOrders < 0 {
			return nil, utils.ValidationError("total_orders cannot be negative")
		}
		user.TotalOrders = *in.TotalOrders
	}
	if in.TotalSpent != nil {
		if *in.TotalSpent < 0 {
			return nil, utils.ValidationError("total_spent cannot be negative")
		}
		user.TotalSpent = *in.TotalSpent
	}
	if in.Password != nil && *in.Password != "" {
		if valid, msg := utils.ValidatePassword(*in.Password); !valid {
			return nil, utils.ValidationError(msg)
		}
		hash, err := HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, utils.InternalError("Failed to process password", err)
		}
		user.Password = hash
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	utils.LogInfo("Client %d updated by admin", user.ID)
	return user, nil
}

// Delete removes a user. Orders owned by the user are kept.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return utils.InternalError("Failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("User not found")
	}
	utils.LogInfo("User %d deleted", id)
	return nil
}

func (s *UserService) applyEmail(ctx context.Context, user *models.User, email string) error {
	email = NormalizeEmail(email)
	if email == "" || email == user.Email {
		return nil
	}
	if valid, msg := utils.ValidateEmail(email); !valid {
		return utils.ValidationError(msg)
	}
	taken, err := emailTaken(ctx, s.db, email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return utils.DuplicateEmailError()
	}
	user.Email = email
	return nil
}

func (s *UserService) save(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.DuplicateEmailError()
		}
		return utils.InternalError("Failed to update user", err)
	}
	return nil
}
