package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/you/foodauth/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Email         string    `gorm:"uniqueIndex;size:255;not null"`
	Phone         *string   `gorm:"uniqueIndex;size:32"`
	PasswordHash  string    `gorm:"column:password;not null"`
	FirstName     string    `gorm:"size:100"`
	LastName      string    `gorm:"size:100"`
	PhoneVerified bool      `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	dbUser := userToDB(user)
	if err := conn(ctx, r.db).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(ctx, user)
		}
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if phone == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := conn(ctx, r.db).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	res := conn(ctx, r.db).Model(&DBUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"email":          dbUser.Email,
		"phone":          dbUser.Phone,
		"password":       dbUser.PasswordHash,
		"first_name":     dbUser.FirstName,
		"last_name":      dbUser.LastName,
		"phone_verified": dbUser.PhoneVerified,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return r.duplicateError(ctx, user)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// duplicateError names the column that collided. The lookup bypasses any
// open transaction since a failed statement aborts it on postgres.
func (r *UserRepositoryImpl) duplicateError(ctx context.Context, user *domain.User) error {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).Count(&n).Error
	if err == nil && n == 0 && user.Phone != "" {
		return domain.ErrPhoneAlreadyUsed
	}
	return domain.ErrUserAlreadyExists
}

// MarkPhoneVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkPhoneVerified(ctx context.Context, userID string) error {
	res := conn(ctx, r.db).Model(&DBUser{}).Where("id = ?", userID).Update("phone_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Email:         user.Email,
		Phone:         optional(user.Phone),
		PasswordHash:  user.PasswordHash,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PhoneVerified: user.PhoneVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		Phone:         deref(dbUser.Phone),
		PasswordHash:  dbUser.PasswordHash,
		FirstName:     dbUser.FirstName,
		LastName:      dbUser.LastName,
		PhoneVerified: dbUser.PhoneVerified,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
