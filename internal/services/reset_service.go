package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"

	"pomoweb/internal/constants"
	"pomoweb/internal/mailer"
	"pomoweb/internal/repository"
	"pomoweb/internal/token"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// PasswordResetService implements the forgot-password flow: mint a signed
// time-limited token for an account, mail the reset link, and later verify
// the token and overwrite the password hash.
type PasswordResetService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	sender   mailer.Sender
	baseURL  string
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(userRepo repository.UserRepository, tokens *token.Manager, sender mailer.Sender, baseURL string) *PasswordResetService {
	return &PasswordResetService{
		userRepo: userRepo,
		tokens:   tokens,
		sender:   sender,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// RequestReset mints and mails a reset token when the identifier matches an
// account that has an email on file. It always succeeds from the caller's
// point of view so responses never reveal whether an account exists; mail
// delivery failures are logged and swallowed.
func (s *PasswordResetService) RequestReset(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}

	user, err := s.userRepo.FindByUsername(identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find user: %w", err)
		}
		user, err = s.userRepo.FindByEmail(identifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
	}

	if user.Email == nil || *user.Email == "" {
		return nil
	}

	signed, err := s.tokens.Mint(user.ID, *user.Email)
	if err != nil {
		return fmt.Errorf("failed to mint reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset/%s", s.baseURL, signed)
	if err := s.sender.SendPasswordReset(*user.Email, resetURL); err != nil {
		log.Printf("password reset mail to user %d failed: %v", user.ID, err)
	}

	return nil
}

// VerifyToken checks a reset token and returns its claims. Expired and
// tampered tokens surface as token.ErrExpired and token.ErrInvalid.
func (s *PasswordResetService) VerifyToken(tokenString string) (*token.ResetClaims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	// The account behind the token must still exist.
	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, token.ErrInvalid
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return claims, nil
}

// CompleteReset re-verifies the token, validates the new password, and
// overwrites the stored hash. Tokens are not consumed (see DESIGN.md) and
// existing sessions stay valid.
func (s *PasswordResetService) CompleteReset(tokenString, newPassword, confirmPassword string) error {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.userRepo.UpdatePassword(claims.UserID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
