package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/foodauth/domain"
)

// OTPServiceImpl implements domain.OTPService on top of the OTP ledger.
type OTPServiceImpl struct {
	repo   domain.OTPRepository
	config OTPConfig
	now    func() time.Time
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(repo domain.OTPRepository, config OTPConfig) *OTPServiceImpl {
	if config.Length <= 0 {
		config.Length = 6
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &OTPServiceImpl{repo: repo, config: config, now: time.Now}
}

// WithClock replaces the time source.
func (s *OTPServiceImpl) WithClock(now func() time.Time) *OTPServiceImpl {
	s.now = now
	return s
}

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate() (string, error) {
	return generateSecureCode(s.config.Length)
}

// Issue implements domain.OTPService. Earlier pending codes stay valid until
// they expire; verification always picks the newest matching one.
func (s *OTPServiceImpl) Issue(ctx context.Context, userID, phone string) (*domain.OTPRecord, error) {
	code, err := s.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}
	now := s.now()
	rec := &domain.OTPRecord{
		UserID:    userID,
		Phone:     phone,
		Code:      code,
		ExpiresAt: now.Add(s.config.TTL),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}
	return rec, nil
}

// Verify implements domain.OTPService
func (s *OTPServiceImpl) Verify(ctx context.Context, userID, code string) (*domain.OTPRecord, error) {
	rec, err := s.repo.FindLatestPending(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(rec.ExpiresAt) {
		return nil, domain.ErrOTPExpired
	}
	if err := s.repo.MarkVerified(ctx, rec.ID); err != nil {
		return nil, err
	}
	rec.Verified = true
	return rec, nil
}

// IsExpired reports whether expiresAt lies in the past.
func (s *OTPServiceImpl) IsExpired(expiresAt time.Time) bool {
	return s.now().After(expiresAt)
}

// generateSecureCode returns length digits drawn uniformly from crypto/rand.
func generateSecureCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
