package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/justsurfingit/chamba-match/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidEmail = errors.New("invalid email address")

// AuthService is a stand-in for real authentication: any well-formed email
// logs in, and addresses containing "admin" get the admin role.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// RoleForEmail is the role a login with email receives.
func RoleForEmail(email string) string {
	if strings.Contains(strings.ToLower(email), "admin") {
		return models.RoleAdmin
	}
	return models.RoleStudent
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// Login returns the user for email, creating the account on first use.
func (s *AuthService) Login(ctx context.Context, email string) (*models.User, error) {
	return s.findOrCreate(ctx, "", email)
}

// Register creates or renames the account for email.
func (s *AuthService) Register(ctx context.Context, name, email string) (*models.User, error) {
	return s.findOrCreate(ctx, strings.TrimSpace(name), email)
}

func (s *AuthService) findOrCreate(ctx context.Context, name, rawEmail string) (*models.User, error) {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.DB.WithContext(ctx).Where(models.User{Email: email}).
		Attrs(models.User{
			Name:   defaultName(name, email),
			Role:   RoleForEmail(email),
			Avatar: fmt.Sprintf("https://picsum.photos/seed/%s/100/100", strings.SplitN(email, "@", 2)[0]),
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	if name != "" && user.Name != name {
		user.Name = name
		if err := s.DB.WithContext(ctx).Model(&user).Update("name", name).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func defaultName(name, email string) string {
	if name != "" {
		return name
	}
	return strings.SplitN(email, "@", 2)[0]
}

// ProfileUpdate holds the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name      *string
	Phone     *string
	Gender    *string
	BirthDate *string
}

func (s *AuthService) Profile(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, email)
	if err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if upd.Name != nil {
		changes["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		changes["phone"] = strings.TrimSpace(*upd.Phone)
	}
	if upd.Gender != nil {
		changes["gender"] = strings.TrimSpace(*upd.Gender)
	}
	if upd.BirthDate != nil {
		changes["birth_date"] = strings.TrimSpace(*upd.BirthDate)
	}
	if len(changes) == 0 {
		return user, nil
	}
	if err := s.DB.WithContext(ctx).Model(user).Updates(changes).Error; err != nil {
		return nil, err
	}
	return s.Profile(ctx, email)
}
