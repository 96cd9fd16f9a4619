package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Phone verification events
	PhoneOTPRequestEvent AuditEventType = "PHONE_OTP_REQUESTED"
	PhoneOTPVerifyEvent  AuditEventType = "PHONE_OTP_VERIFIED"
	PhoneOTPFailureEvent AuditEventType = "PHONE_OTP_VERIFICATION_FAILED"
	SMSDeliveryFailure   AuditEventType = "SMS_DELIVERY_FAILED"

	// Authentication events
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	StaffLoginEvent       AuditEventType = "STAFF_LOGIN"
	StaffLoginFailure     AuditEventType = "STAFF_LOGIN_FAILED"

	// Staff administration events
	StaffCreatedEvent     AuditEventType = "STAFF_CREATED"
	StaffDeactivatedEvent AuditEventType = "STAFF_DEACTIVATED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType     AuditEventType         `json:"event_type"`
	PrincipalID   string                 `json:"principal_id,omitempty"`
	PrincipalType PrincipalType          `json:"principal_type,omitempty"`
	Email         string                 `json:"email,omitempty"`
	Phone         string                 `json:"phone,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg      string                 `json:"error_msg,omitempty"`
	Success       bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, principalID string, principalType PrincipalType) *AuditEvent {
	return &AuditEvent{
		EventType:     eventType,
		PrincipalID:   principalID,
		PrincipalType: principalType,
		Timestamp:     time.Now().UTC(),
		Metadata:      make(map[string]interface{}),
		Success:       true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
