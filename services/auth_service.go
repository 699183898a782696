package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"heaven-palace/models"
	"heaven-palace/utils"
)

const minPasswordLen = 8

type AuthResult struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// AuthService signs guests and staff in with email and password and issues
// JWTs.
type AuthService struct {
	DB        *gorm.DB
	secret    string
	notifier  Notifier
	templates TemplateRenderer
}

func NewAuthService(db *gorm.DB, secret string, notifier Notifier, templates TemplateRenderer) *AuthService {
	return &AuthService{DB: db, secret: secret, notifier: notifier, templates: templates}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Signup creates the account and its profile together. New accounts are
// always guests; admins are seeded or promoted in the database.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := models.Account{ID: uuid.NewString(), Email: addr, PasswordHash: string(hash), Role: models.RoleGuest}
	prof := models.Profile{ID: acct.ID, Email: addr, FullName: strings.TrimSpace(fullName), Role: models.RoleGuest}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acct).Error; err != nil {
			return err
		}
		return tx.Create(&prof).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: an account with this email already exists", ErrConflict)
		}
		return nil, err
	}

	s.welcome(ctx, prof)

	token, err := utils.CreateToken(s.secret, acct.ID, acct.Email, prof.FullName, string(acct.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: prof}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	addr, err := normalizeEmail(email)
	if err != nil || password == "" {
		return nil, ErrUnauthenticated
	}

	var acct models.Account
	if err := s.DB.WithContext(ctx).Where("email = ?", addr).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !isBcryptHash(acct.PasswordHash) ||
		bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrUnauthenticated
	}

	var prof models.Profile
	if err := s.DB.WithContext(ctx).Where("id = ?", acct.ID).First(&prof).Error; err != nil {
		// profiles heal themselves on the first GET /profile
		prof = models.Profile{ID: acct.ID, Email: acct.Email, Role: acct.Role}
	}

	token, err := utils.CreateToken(s.secret, acct.ID, acct.Email, prof.FullName, string(acct.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Profile: prof}, nil
}

// Identify turns a bearer token into an Identity.
func (s *AuthService) Identify(token string) (*Identity, error) {
	claims, err := utils.ValidateJWT(s.secret, token)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   models.Role(claims.Role),
	}, nil
}

func (s *AuthService) welcome(ctx context.Context, p models.Profile) {
	if s.notifier == nil || s.templates == nil {
		return
	}
	name := p.FullName
	if name == "" {
		name = "Guest"
	}
	msg, err := s.templates.Render(ctx, utils.TemplateWelcome, map[string]any{"GuestName": name})
	if err != nil {
		log.Printf("signup %s: render welcome email: %v", p.ID, err)
		return
	}
	msg.To = p.Email
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Printf("signup %s: welcome email failed: %v", p.ID, err)
	}
}
