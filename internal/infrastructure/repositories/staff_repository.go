package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/foodauth/domain"
	"gorm.io/gorm"
)

// StaffRepositoryImpl implements domain.StaffRepository using GORM
type StaffRepositoryImpl struct {
	db *gorm.DB
}

// DBStaff is the database model for staff members
type DBStaff struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	Phone        *string   `gorm:"uniqueIndex;size:32"`
	PasswordHash string    `gorm:"column:password;not null"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	Role         string    `gorm:"index;size:32;not null"`
	IsActive     bool      `gorm:"index;not null"`
	LocationID   *string   `gorm:"index;size:36"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (DBStaff) TableName() string {
	return "staff"
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domain.StaffRepository {
	return &StaffRepositoryImpl{db: db}
}

// Create implements domain.StaffRepository
func (r *StaffRepositoryImpl) Create(ctx context.Context, staff *domain.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	row := staffToDB(staff)
	if err := conn(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrStaffEmailTaken
		}
		return err
	}
	staff.CreatedAt = row.CreatedAt
	staff.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByEmail implements domain.StaffRepository
func (r *StaffRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.StaffRepository
func (r *StaffRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	if phone == "" {
		return nil, domain.ErrStaffNotFound
	}
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.StaffRepository
func (r *StaffRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *StaffRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Staff, error) {
	var row DBStaff
	if err := conn(ctx, r.db).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return staffToDomain(&row)
}

// Update implements domain.StaffRepository
func (r *StaffRepositoryImpl) Update(ctx context.Context, staff *domain.Staff) error {
	row := staffToDB(staff)
	res := conn(ctx, r.db).Model(&DBStaff{}).Where("id = ?", staff.ID).Updates(map[string]interface{}{
		"email":       row.Email,
		"phone":       row.Phone,
		"password":    row.PasswordHash,
		"first_name":  row.FirstName,
		"last_name":   row.LastName,
		"role":        row.Role,
		"is_active":   row.IsActive,
		"location_id": row.LocationID,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrStaffEmailTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

// Deactivate implements domain.StaffRepository. Rows are never deleted.
func (r *StaffRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Model(&DBStaff{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

// List implements domain.StaffRepository. Results are newest first.
func (r *StaffRepositoryImpl) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int64, error) {
	filter.Normalize()

	q := conn(ctx, r.db).Model(&DBStaff{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}
	if filter.Role != nil {
		q = q.Where("role = ?", filter.Role.String())
	}
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBStaff
	err := q.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Staff, 0, len(rows))
	for i := range rows {
		s, err := staffToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, nil
}

func staffToDB(s *domain.Staff) *DBStaff {
	return &DBStaff{
		ID:           s.ID,
		Email:        s.Email,
		Phone:        optional(s.Phone),
		PasswordHash: s.PasswordHash,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Role:         s.Role.String(),
		IsActive:     s.IsActive,
		LocationID:   optional(s.LocationID),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func staffToDomain(row *DBStaff) (*domain.Staff, error) {
	role, err := domain.ParseStaffRole(row.Role)
	if err != nil {
		return nil, err
	}
	return &domain.Staff{
		ID:           row.ID,
		Email:        row.Email,
		Phone:        deref(row.Phone),
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Role:         role,
		IsActive:     row.IsActive,
		LocationID:   deref(row.LocationID),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
