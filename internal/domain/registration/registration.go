package registration

import (
	"errors"
	"time"
)

// Status of a registration. Records are only ever created as pending; the admin
// surface moves them between the three states with no transition guards.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// UnknownProvenance is stored when the transport did not expose an address or agent.
const UnknownProvenance = "unknown"

type Registration struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Event           string    `json:"event"`
	ExperienceLevel string    `json:"experienceLevel"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdated     time.Time `json:"lastUpdated"`
	RegistrationIP  string    `json:"registrationIP"`
	UserAgent       string    `json:"userAgent"`
}

// at most one registration may exist per (email, event) pair
var ErrAlreadyRegistered = errors.New("registration already exists for this email and event")

var ErrNotFound = errors.New("registration not found")

type CreateRegistrationRequest struct {
	FullName        string `json:"fullName" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Event           string `json:"event" binding:"required"`
	ExperienceLevel string `json:"experienceLevel" binding:"required"`
}

// Provenance is captured from the request transport at creation time. It is kept for
// audit purposes only and never drives any logic.
type Provenance struct {
	IP        string
	UserAgent string
}

// A factory to build a pending Registration from the incoming DTO. The store assigns
// the ID on insert.
func NewFromCreateRequest(req CreateRegistrationRequest, prov Provenance) Registration {
	if prov.IP == "" {
		prov.IP = UnknownProvenance
	}

	if prov.UserAgent == "" {
		prov.UserAgent = UnknownProvenance
	}

	now := time.Now().UTC()

	return Registration{
		FullName:        req.FullName,
		Email:           req.Email,
		Event:           req.Event,
		ExperienceLevel: req.ExperienceLevel,
		Status:          StatusPending,
		CreatedAt:       now,
		LastUpdated:     now,
		RegistrationIP:  prov.IP,
		UserAgent:       prov.UserAgent,
	}
}
