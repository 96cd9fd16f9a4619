package handlers

import (
	"time"

	"github.com/you/foodauth/domain"
)

// UserDTO is the public view of a customer. It never carries the password hash.
type UserDTO struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toUserDTO(u *domain.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Phone:           u.Phone,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsPhoneVerified: u.PhoneVerified,
		CreatedAt:       u.CreatedAt,
	}
}

// StaffDTO is the public view of a staff member.
type StaffDTO struct {
	ID         string           `json:"id"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Role       domain.StaffRole `json:"role"`
	IsActive   bool             `json:"isActive"`
	LocationID string           `json:"locationId,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func toStaffDTO(s *domain.Staff) *StaffDTO {
	if s == nil {
		return nil
	}
	return &StaffDTO{
		ID:         s.ID,
		Email:      s.Email,
		Phone:      s.Phone,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Role:       s.Role,
		IsActive:   s.IsActive,
		LocationID: s.LocationID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// StaffListDTO is a page of staff members.
type StaffListDTO struct {
	Staff      []StaffDTO `json:"staff"`
	Pagination Pagination `json:"pagination"`
}

func toStaffListDTO(p *domain.StaffPage) StaffListDTO {
	out := StaffListDTO{
		Staff: make([]StaffDTO, 0, len(p.Staff)),
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
	for i := range p.Staff {
		out.Staff = append(out.Staff, *toStaffDTO(&p.Staff[i]))
	}
	return out
}

// AuthDTO is the body of every successful authentication step.
type AuthDTO struct {
	User                 *UserDTO          `json:"user,omitempty"`
	Staff                *StaffDTO         `json:"staff,omitempty"`
	Tokens               *domain.TokenPair `json:"tokens,omitempty"`
	UserID               string            `json:"userId,omitempty"`
	RequiresVerification bool              `json:"requiresVerification,omitempty"`
}

func toAuthDTO(r *domain.AuthResult) AuthDTO {
	out := AuthDTO{
		Tokens:               r.Tokens,
		RequiresVerification: r.RequiresVerification,
	}
	if r.RequiresVerification {
		out.UserID = r.UserID
		return out
	}
	out.User = toUserDTO(r.User)
	out.Staff = toStaffDTO(r.Staff)
	return out
}

// PolicyDTO is one access rule.
type PolicyDTO struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
