package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/you/foodauth/domain"
)

// MockStaffRepository implements domain.StaffRepository interface for testing
type MockStaffRepository struct {
	CreateFunc      func(ctx context.Context, staff *domain.Staff) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Staff, error)
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Staff, error)
	UpdateFunc      func(ctx context.Context, staff *domain.Staff) error
	ListFunc        func(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int64, error)

	mu     sync.Mutex
	staff  map[string]domain.Staff
	nextID int
}

// NewMockStaffRepository creates a new MockStaffRepository seeded with staff
func NewMockStaffRepository(seed ...*domain.Staff) *MockStaffRepository {
	m := &MockStaffRepository{staff: make(map[string]domain.Staff)}
	for _, s := range seed {
		m.staff[s.ID] = *s
	}
	return m
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, staff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.staff {
		if s.Email == staff.Email {
			return domain.ErrStaffEmailTaken
		}
	}
	if staff.ID == "" {
		m.nextID++
		staff.ID = fmt.Sprintf("staff-%d", m.nextID)
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}
	m.staff[staff.ID] = *staff
	return nil
}

func (m *MockStaffRepository) find(match func(domain.Staff) bool) (*domain.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.staff {
		if match(s) {
			found := s
			return &found, nil
		}
	}
	return nil, domain.ErrStaffNotFound
}

func (m *MockStaffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return m.find(func(s domain.Staff) bool { return s.Email == email })
}

func (m *MockStaffRepository) FindByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	if phone == "" {
		return nil, domain.ErrStaffNotFound
	}
	return m.find(func(s domain.Staff) bool { return s.Phone == phone })
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return m.find(func(s domain.Staff) bool { return s.ID == id })
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, staff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[staff.ID]; !ok {
		return domain.ErrStaffNotFound
	}
	m.staff[staff.ID] = *staff
	return nil
}

func (m *MockStaffRepository) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return domain.ErrStaffNotFound
	}
	s.IsActive = false
	m.staff[id] = s
	return nil
}

// List filters by role, location and active flag, and searches name and email.
func (m *MockStaffRepository) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	filter.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var all []domain.Staff
	for _, s := range m.staff {
		if filter.Role != nil && s.Role != *filter.Role {
			continue
		}
		if filter.LocationID != "" && s.LocationID != filter.LocationID {
			continue
		}
		if filter.IsActive != nil && s.IsActive != *filter.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.FirstName+" "+s.LastName+" "+s.Email), search) {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := filter.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ domain.StaffRepository = (*MockStaffRepository)(nil)
