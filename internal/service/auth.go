package service

import (
	"errors"
	"fmt"

	"stakevault/config"
	"stakevault/internal/auth"
	"stakevault/internal/domain"
	"stakevault/internal/models"
	"stakevault/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
	ErrAccountBanned  = errors.New("account is banned")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	refRepo  *repository.ReferralRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, refRepo *repository.ReferralRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, refRepo: refRepo}
}

// Register creates a user with a fresh referral code. When referralCode
// names an existing user, the direct referral edge is recorded and the
// code string denormalized onto the new user. A bad referral code is
// ignored rather than blocking signup.
func (s *AuthService) Register(username, email, password, referralCode string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	_, err = s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", "", ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	ownCode, err := s.userRepo.GenerateReferralCode()
	if err != nil {
		return nil, "", "", err
	}

	var referrer *models.User
	if referralCode != "" {
		referrer, err = s.userRepo.GetByReferralCode(referralCode)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", "", err
			}
			referrer = nil
		}
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		ReferralCode: ownCode,
		IsActive:     true,
	}
	if referrer != nil {
		u.ReferredBy = referrer.ReferralCode
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	if referrer != nil && referrer.ID != u.ID {
		if err := s.refRepo.CreateEdge(&models.UserReferral{
			ReferrerID:     referrer.ID,
			ReferredUserID: u.ID,
			LevelNumber:    1,
		}); err != nil {
			log.WithError(err).WithField("user_id", u.ID).Warn("referral edge create failed")
		}
	}

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if u.IsBanned || !u.IsActive {
		return nil, "", "", ErrAccountBanned
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// ChangePassword updates the user's password after verifying the current one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	token, err := jwt.ParseWithClaims(refreshToken, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", auth.ErrInvalidToken
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	var userID uint
	fmt.Sscanf(claims.Subject, "%d", &userID)
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	access, _ = auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ = auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return access, refresh, nil
}
