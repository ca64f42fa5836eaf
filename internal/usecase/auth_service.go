package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var avatarExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// AuthService owns accounts: registration, login, profile reads and
// allow-listed updates, avatar upload, and account deletion.
type AuthService struct {
	users  domain.UserRepository
	tokens domain.TokenIssuer
	media  domain.MediaUploader
	logger zerolog.Logger
}

func NewAuthService(users domain.UserRepository, tokens domain.TokenIssuer, media domain.MediaUploader, logger zerolog.Logger) (*AuthService, error) {
	if users == nil {
		return nil, errors.New("user repository required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer required")
	}
	if media == nil {
		return nil, errors.New("media uploader required")
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		media:  media,
		logger: logger.With().Str("component", "auth").Logger(),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return domain.User{}, "", domain.Validationf("invalid email address")
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", domain.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return domain.User{}, "", domain.Validationf("first_name and last_name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, "", domain.Validationf("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	counts, err := s.users.CountOwned(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	return domain.UserProfile{User: user, ProfileCounts: counts}, nil
}

// UpdateProfile applies an allow-listed partial update. Unknown keys are
// rejected so typos never silently no-op.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, payload map[string]any) (domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	emailChanged := false
	for key, value := range payload {
		switch key {
		case "first_name":
			if toString(value) == "" {
				return domain.UserProfile{}, domain.Validationf("first_name cannot be empty")
			}
			user.FirstName = toString(value)
		case "last_name":
			if toString(value) == "" {
				return domain.UserProfile{}, domain.Validationf("last_name cannot be empty")
			}
			user.LastName = toString(value)
		case "bio":
			user.Bio = toString(value)
		case "location":
			user.Location = toString(value)
		case "email":
			email := strings.ToLower(toString(value))
			if !emailPattern.MatchString(email) {
				return domain.UserProfile{}, domain.Validationf("invalid email address")
			}
			if email != user.Email {
				user.Email = email
				emailChanged = true
			}
		default:
			return domain.UserProfile{}, domain.Validationf("field %q cannot be updated", key)
		}
	}

	if emailChanged {
		taken, err := s.users.EmailTaken(ctx, user.Email, user.ID)
		if err != nil {
			return domain.UserProfile{}, err
		}
		if taken {
			return domain.UserProfile{}, fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return domain.UserProfile{}, err
	}
	return s.Profile(ctx, userID)
}

// UploadAvatar pushes the image to the media host and stores the returned URL.
func (s *AuthService) UploadAvatar(ctx context.Context, userID int64, file ImageFile) (domain.User, error) {
	if err := validateImageName(file.Filename, avatarExtensions); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	folder := fmt.Sprintf("profile/user_%d", userID)
	url, err := s.media.UploadImage(ctx, file.Reader, file.Filename, folder)
	if err != nil {
		return domain.User{}, fmt.Errorf("upload avatar: %w", err)
	}

	user.AvatarURL = url
	if err := s.users.Update(ctx, &user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info().Int64("user_id", userID).Msg("avatar updated")
	return user, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}
