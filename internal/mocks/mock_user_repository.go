package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/you/foodauth/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing.
// Without overrides it behaves like an in-memory store.
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	MarkPhoneVerifiedFunc func(ctx context.Context, userID string) error

	mu     sync.Mutex
	users  map[string]domain.User
	nextID int
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository(seed ...*domain.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]domain.User)}
	for _, u := range seed {
		m.users[u.ID] = *u
	}
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || (user.Phone != "" && u.Phone == user.Phone) {
			return domain.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *MockUserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return m.find(func(u domain.User) bool { return u.Email == email })
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	if phone == "" {
		return nil, domain.ErrUserNotFound
	}
	return m.find(func(u domain.User) bool { return u.Phone == phone })
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return m.find(func(u domain.User) bool { return u.ID == id })
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *MockUserRepository) MarkPhoneVerified(ctx context.Context, userID string) error {
	if m.MarkPhoneVerifiedFunc != nil {
		return m.MarkPhoneVerifiedFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PhoneVerified = true
	m.users[userID] = u
	return nil
}

// Users returns a snapshot of the stored users.
func (m *MockUserRepository) Users() []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out
}

var _ domain.UserRepository = (*MockUserRepository)(nil)
