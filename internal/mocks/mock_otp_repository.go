package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/foodauth/domain"
)

// MockOTPRepository implements domain.OTPRepository as an in-memory ledger
type MockOTPRepository struct {
	CreateFunc       func(ctx context.Context, record *domain.OTPRecord) error
	MarkVerifiedFunc func(ctx context.Context, id string) error

	mu      sync.Mutex
	records []domain.OTPRecord
}

func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, record *domain.OTPRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.ID == "" {
		record.ID = fmt.Sprintf("otp-%d", len(m.records)+1)
	}
	m.records = append(m.records, *record)
	return nil
}

// FindLatestPending prefers the newest CreatedAt, then the latest insert.
func (m *MockOTPRepository) FindLatestPending(ctx context.Context, userID, code string) (*domain.OTPRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.OTPRecord
	for i := range m.records {
		r := &m.records[i]
		if r.UserID != userID || r.Code != code || r.Verified {
			continue
		}
		if best == nil || !r.CreatedAt.Before(best.CreatedAt) {
			best = r
		}
	}
	if best == nil {
		return nil, domain.ErrOTPInvalid
	}
	found := *best
	return &found, nil
}

func (m *MockOTPRepository) MarkVerified(ctx context.Context, id string) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && !m.records[i].Verified {
			m.records[i].Verified = true
			return nil
		}
	}
	return domain.ErrOTPInvalid
}

// Records returns a snapshot of the ledger.
func (m *MockOTPRepository) Records() []domain.OTPRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.OTPRecord(nil), m.records...)
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
