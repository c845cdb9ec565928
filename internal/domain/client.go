package domain

import "time"

// ClientStatus enumerates lifecycle states for a client profile.
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "Active"
	ClientStatusDeleted ClientStatus = "Deleted"
)

// VerificationStatus tracks KYC verification of a client.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "Pending"
	VerificationStatusVerified VerificationStatus = "Verified"
)

// Gender as captured on the client profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Client is a bank customer profile managed by exactly one agent.
type Client struct {
	ID                 string
	AgentID            string
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	Gender             Gender
	Email              string
	PhoneNumber        string
	Address            string
	City               string
	State              string
	Country            string
	PostalCode         string
	VerificationStatus VerificationStatus
	Status             ClientStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OwnerID satisfies authz.Owned.
func (c *Client) OwnerID() string { return c.AgentID }

// Deleted reports whether the profile is in its terminal state. Deleted
// profiles stay queryable by id for audit but reject every mutation.
func (c *Client) Deleted() bool {
	return c.Status == ClientStatusDeleted
}
