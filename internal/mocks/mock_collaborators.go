package mocks

import (
	"context"
	"sync"

	"github.com/you/foodauth/domain"
)

// SentSMS is one message captured by MockSMSSender
type SentSMS struct {
	Phone string
	Code  string
}

// MockSMSSender implements domain.SMSSender and records every send
type MockSMSSender struct {
	SendOTPFunc func(ctx context.Context, phone, code string) error

	mu   sync.Mutex
	Sent []SentSMS
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) SendOTP(ctx context.Context, phone, code string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{Phone: phone, Code: code})
	m.mu.Unlock()
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone, code)
	}
	return nil
}

// Last returns the most recent message, or the zero value.
func (m *MockSMSSender) Last() SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentSMS{}
	}
	return m.Sent[len(m.Sent)-1]
}

// MockAuditLogger implements domain.AuditLogger and keeps the events
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []domain.AuditEvent
}

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *event)
}

// Has reports whether an event of type t was logged.
func (m *MockAuditLogger) Has(t domain.AuditEventType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.EventType == t {
			return true
		}
	}
	return false
}

// MockTransactor implements domain.Transactor by running fn inline.
// Commits and Rollbacks count the outcomes.
type MockTransactor struct {
	Commits   int
	Rollbacks int
}

func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.Rollbacks++
		return err
	}
	m.Commits++
	return nil
}

var (
	_ domain.SMSSender   = (*MockSMSSender)(nil)
	_ domain.AuditLogger = (*MockAuditLogger)(nil)
	_ domain.Transactor  = (*MockTransactor)(nil)
)
