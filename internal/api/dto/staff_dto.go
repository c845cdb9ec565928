package dto

import (
	"time"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// CreateStaffRequest payload for provisioning a staff identity.
type CreateStaffRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"omitempty,min=8,max=255"`
	Role      string `json:"role" validate:"required"`
}

// UpdateStaffRequest payload; omitted fields keep current values.
type UpdateStaffRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=100"`
	Role      *string `json:"role"`
	Password  string  `json:"password" validate:"omitempty,min=8,max=255"`
}

// StaffResponse is the outward shape of a staff identity.
type StaffResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStaffResponse maps the domain record.
func NewStaffResponse(staff *domain.Staff) StaffResponse {
	return StaffResponse{
		ID:        staff.ID,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		Email:     staff.Email,
		Role:      string(staff.Role),
		Status:    string(staff.Status),
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}
