package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/golang-jwt/jwt"
	"gorm.io/gorm"
)

// AuthConfig configures token issuing and password hashing
type AuthConfig struct {
	Secret                 string
	Expiration             time.Duration
	AllowAdminRegistration bool
	BcryptCost             int
}

// Claims are the bearer token claims
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token string
	User  *models.User
}

// RegisterInput carries the registration fields. Role may be empty.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService verifies credentials and issues and validates bearer tokens
type AuthService struct {
	db     *gorm.DB
	cfg    AuthConfig
	secret []byte
	now    func() time.Time

	// compared against when the email is unknown so both failure paths cost a bcrypt check
	dummyHash string
}

func NewAuthService(db *gorm.DB, cfg AuthConfig) *AuthService {
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Hour
	}
	dummy, err := HashPassword("not-a-real-password", cfg.BcryptCost)
	if err != nil {
		utils.LogWarn("Failed to prepare dummy password hash: %v", err)
	}
	return &AuthService{
		db:        db,
		cfg:       cfg,
		secret:    []byte(cfg.Secret),
		now:       time.Now,
		dummyHash: dummy,
	}
}

// NormalizeEmail lowercases and trims an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs a token bound to it
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)

	if missing := utils.MissingFields([]string{"username", "email", "password"}, in.Username, in.Email, in.Password); len(missing) > 0 {
		return nil, utils.ValidationError("Please enter all required data: " + strings.Join(missing, ", "))
	}
	if valid, msg := utils.ValidateEmail(in.Email); !valid {
		return nil, utils.ValidationError(msg)
	}
	if valid, msg := utils.ValidatePassword(in.Password); !valid {
		return nil, utils.ValidationError(msg)
	}

	role := models.RoleClient
	if in.Role != "" {
		if !models.IsValidRole(in.Role) {
			return nil, utils.ValidationError(fmt.Sprintf("Invalid role %q", in.Role))
		}
		if in.Role == models.RoleAdmin && !s.cfg.AllowAdminRegistration {
			utils.LogWarn("Rejected admin self-registration for %s", in.Email)
			return nil, utils.ForbiddenError("Admin registration is disabled")
		}
		role = in.Role
	}

	exists, err := emailTaken(ctx, s.db, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		utils.LogInfo("Registration rejected, email already exists: %s", in.Email)
		return nil, utils.DuplicateEmailError()
	}

	user, err := s.createUser(ctx, in.Username, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("User registered: id=%d email=%s role=%s", user.ID, user.Email, user.Role)
	return &AuthResult{Token: token, User: user}, nil
}

// CreateAdmin creates an admin account regardless of AllowAdminRegistration.
// It backs the create-admin command.
func (s *AuthService) CreateAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)
	if missing := utils.MissingFields([]string{"username", "email", "password"}, username, email, password); len(missing) > 0 {
		return nil, utils.ValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if valid, msg := utils.ValidateEmail(email); !valid {
		return nil, utils.ValidationError(msg)
	}
	if valid, msg := utils.ValidatePassword(password); !valid {
		return nil, utils.ValidationError(msg)
	}
	exists, err := emailTaken(ctx, s.db, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.DuplicateEmailError()
	}
	return s.createUser(ctx, username, email, password, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, username, email, password, role string) (*models.User, error) {
	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, utils.InternalError("Failed to process password", err)
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.DuplicateEmailError()
		}
		return nil, utils.InternalError("Failed to create user", err)
	}
	return user, nil
}

// Login checks credentials. Unknown email and wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, utils.ValidationError("Email and password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.InternalError("Failed to load user", err)
		}
		CheckPassword(password, s.dummyHash)
		utils.LogInfo("Login failed for %s", email)
		return nil, utils.InvalidCredentialsError()
	}
	if !CheckPassword(password, user.Password) {
		utils.LogInfo("Login failed for %s", email)
		return nil, utils.InvalidCredentialsError()
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("User logged in: id=%d", user.ID)
	return &AuthResult{Token: token, User: &user}, nil
}

// IssueToken signs an HS256 token carrying the user id and role
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.cfg.Expiration).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", utils.InternalError("Failed to generate token", err)
	}
	return token, nil
}

// Authenticate validates a bearer token without touching the store
func (s *AuthService) Authenticate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, utils.UnauthenticatedError(utils.ErrUnauthorized, nil)
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, utils.UnauthenticatedError(utils.ErrInvalidToken, err)
	}
	if claims.UserID == 0 || !models.IsValidRole(claims.Role) {
		return nil, utils.UnauthenticatedError(utils.ErrInvalidToken, nil)
	}
	return claims, nil
}

// Authorize requires the exact role. There is no hierarchy between roles.
func Authorize(claims *Claims, requiredRole string) error {
	if claims == nil {
		return utils.UnauthenticatedError(utils.ErrUnauthorized, nil)
	}
	if claims.Role != requiredRole {
		return utils.ForbiddenError(utils.ErrForbidden)
	}
	return nil
}

// ChangePassword replaces the stored hash after checking the current password.
// Tokens issued before the change stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return utils.ValidationError("Please provide the current and the new password")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("User not found")
		}
		return utils.InternalError("Failed to load user", err)
	}
	if !CheckPassword(currentPassword, user.Password) {
		return utils.NewAppError(utils.KindInvalidCredentials, "Current password is incorrect", nil)
	}
	if valid, msg := utils.ValidatePassword(newPassword); !valid {
		return utils.ValidationError(msg)
	}

	hash, err := HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return utils.InternalError("Failed to process password", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hash).Error; err != nil {
		return utils.InternalError("Failed to update password", err)
	}
	utils.LogInfo("Password changed for user %d", userID)
	return nil
}

// emailTaken reports whether another user (not exceptID) already uses email
func emailTaken(ctx context.Context, db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	q := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, utils.InternalError("Failed to check email", err)
	}
	return count > 0, nil
}
