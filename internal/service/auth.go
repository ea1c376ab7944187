package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrAdminNotConfigured = errors.New("admin login is not configured")
)

type AuthService struct {
	profileRepo       repository.ProfileRepository
	adminEmail        string
	adminPassword     string
	adminPasswordHash string
}

func NewAuthService(profileRepo repository.ProfileRepository, adminEmail, adminPassword, adminPasswordHash string) *AuthService {
	return &AuthService{
		profileRepo:       profileRepo,
		adminEmail:        NormalizeEmail(adminEmail),
		adminPassword:     adminPassword,
		adminPasswordHash: adminPasswordHash,
	}
}

// AdminLogin checks the single configured admin credential: the plaintext
// secret when one is set, otherwise the configured bcrypt digest. Missing
// configuration is a distinct error so the handler can answer 503.
func (s *AuthService) AdminLogin(email, password string) error {
	if s.adminEmail == "" || (s.adminPassword == "" && s.adminPasswordHash == "") {
		return ErrAdminNotConfigured
	}

	email = NormalizeEmail(email)
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1

	var passwordOK bool
	if s.adminPassword != "" {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	} else {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
	}

	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}

	return nil
}

// MemberLogin checks a submitted password against the digest stored on the
// member's profile. Profiles without a stored digest are treated as absent.
func (s *AuthService) MemberLogin(email, password string) error {
	email = NormalizeEmail(email)
	err := validation.ValidateEmail(email)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, err)
	}

	profile, err := s.profileRepo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up profile: %w", err)
	}

	if !profile.HasPassword() {
		return repository.ErrProfileNotFound
	}

	err = s.ComparePassword(password, *profile.PasswordHash)
	if err != nil {
		return ErrInvalidCredentials
	}

	return nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// ComparePassword is constant time via bcrypt.
func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
