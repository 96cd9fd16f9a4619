package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/you/foodauth/domain"
	"gorm.io/gorm"
)

// DBOTP is the database model for one-time codes
type DBOTP struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"index:idx_otp_lookup,priority:1;size:36;not null"`
	Phone     string    `gorm:"size:32;not null"`
	Code      string    `gorm:"index:idx_otp_lookup,priority:2;size:10;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Verified  bool      `gorm:"index:idx_otp_lookup,priority:3;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (DBOTP) TableName() string {
	return "otp_verifications"
}

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, record *domain.OTPRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	row := &DBOTP{
		ID:        record.ID,
		UserID:    record.UserID,
		Phone:     record.Phone,
		Code:      record.Code,
		ExpiresAt: record.ExpiresAt,
		Verified:  record.Verified,
		CreatedAt: record.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(row).Error; err != nil {
		return err
	}
	record.CreatedAt = row.CreatedAt
	return nil
}

// FindLatestPending implements domain.OTPRepository. Expired records are
// returned too; the caller decides how to report them.
func (r *OTPRepositoryImpl) FindLatestPending(ctx context.Context, userID, code string) (*domain.OTPRecord, error) {
	var row DBOTP
	err := conn(ctx, r.db).
		Where("user_id = ? AND code = ? AND verified = ?", userID, code, false).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}
	return &domain.OTPRecord{
		ID:        row.ID,
		UserID:    row.UserID,
		Phone:     row.Phone,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt,
		Verified:  row.Verified,
		CreatedAt: row.CreatedAt,
	}, nil
}

// MarkVerified implements domain.OTPRepository. Only a pending record can be
// consumed, so a concurrent second verification fails with ErrOTPInvalid.
func (r *OTPRepositoryImpl) MarkVerified(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Model(&DBOTP{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOTPInvalid
	}
	return nil
}
