package dto

import (
	"time"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// DateOnly is the wire format for birth dates.
const DateOnly = "2006-01-02"

// CreateClientRequest payload for a new client profile. Any agent/owner field
// in the payload is ignored; ownership comes from the token.
type CreateClientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Address     string `json:"address" validate:"required,max=100"`
	City        string `json:"city" validate:"required,max=50"`
	State       string `json:"state" validate:"required,max=50"`
	Country     string `json:"country" validate:"required,max=50"`
	PostalCode  string `json:"postal_code" validate:"required,max=10"`
}

// UpdateClientRequest payload; omitted fields keep current values.
type UpdateClientRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,max=50"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=100"`
	City        *string `json:"city" validate:"omitempty,max=50"`
	State       *string `json:"state" validate:"omitempty,max=50"`
	Country     *string `json:"country" validate:"omitempty,max=50"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,max=10"`
}

// ClientResponse is the outward shape of a client profile.
type ClientResponse struct {
	ID                 string    `json:"id"`
	AgentID            string    `json:"agent_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	DateOfBirth        string    `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phone_number"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Country            string    `json:"country"`
	PostalCode         string    `json:"postal_code"`
	VerificationStatus string    `json:"verification_status"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewClientResponse maps the domain record.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:                 client.ID,
		AgentID:            client.AgentID,
		FirstName:          client.FirstName,
		LastName:           client.LastName,
		DateOfBirth:        client.DateOfBirth.Format(DateOnly),
		Gender:             string(client.Gender),
		Email:              client.Email,
		PhoneNumber:        client.PhoneNumber,
		Address:            client.Address,
		City:               client.City,
		State:              client.State,
		Country:            client.Country,
		PostalCode:         client.PostalCode,
		VerificationStatus: string(client.VerificationStatus),
		Status:             string(client.Status),
		CreatedAt:          client.CreatedAt,
		UpdatedAt:          client.UpdatedAt,
	}
}
