package entity

import (
	"github.com/shopspring/decimal"
)

// ClaimStatus is the lifecycle state of a claim
type ClaimStatus string

const (
	StatusPending  ClaimStatus = "pending"
	StatusApproved ClaimStatus = "approved"
	StatusRejected ClaimStatus = "rejected"
	StatusInReview ClaimStatus = "in_review"
)

// Valid reports whether s is one of the known claim statuses
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInReview:
		return true
	}
	return false
}

// Claim represents one insurance claim submission and its lifecycle state.
// IncidentDate and SubmissionDate are ISO-8601 strings as stored by the backend.
type Claim struct {
	ID                string          `json:"id"`
	PolicyNumber      string          `json:"policyNumber"`
	PolicyholderName  string          `json:"policyholderName"`
	PolicyholderEmail string          `json:"policyholderEmail"`
	PolicyholderPhone string          `json:"policyholderPhone"`
	IncidentDate      string          `json:"incidentDate"`
	SubmissionDate    string          `json:"submissionDate"`
	Status            ClaimStatus     `json:"status"`
	ClaimType         string          `json:"claimType"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Documents         []string        `json:"documents,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	AssignedTo        string          `json:"assignedTo,omitempty"`
}

// ClaimInput is the payload accepted when a new claim is submitted.
// ID, submission date and status are assigned by the service, not the caller.
type ClaimInput struct {
	PolicyNumber      string          `json:"policyNumber" validate:"required"`
	PolicyholderName  string          `json:"policyholderName" validate:"required"`
	PolicyholderEmail string          `json:"policyholderEmail" validate:"required,email"`
	PolicyholderPhone string          `json:"policyholderPhone"`
	IncidentDate      string          `json:"incidentDate" validate:"required"`
	ClaimType         string          `json:"claimType" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	Amount            decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// StatusDescriptor is the display mapping for a claim status
type StatusDescriptor struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusDescriptors = map[ClaimStatus]StatusDescriptor{
	StatusPending:  {Label: "PENDING", Color: "yellow"},
	StatusApproved: {Label: "APPROVED", Color: "green"},
	StatusRejected: {Label: "REJECTED", Color: "red"},
	StatusInReview: {Label: "IN REVIEW", Color: "blue"},
}

// Display returns the descriptor used to render the status badge.
// Unknown statuses fall back to a gray badge with the raw value as label.
func (s ClaimStatus) Display() StatusDescriptor {
	if d, ok := statusDescriptors[s]; ok {
		return d
	}
	return StatusDescriptor{Label: string(s), Color: "gray"}
}

// AllowedTransitions lists the next statuses the UI offers for each current
// status. The access layer itself is permissive; this table is advisory for
// the presentation layer.
var AllowedTransitions = map[ClaimStatus][]ClaimStatus{
	StatusPending:  {StatusInReview, StatusApproved, StatusRejected},
	StatusInReview: {StatusApproved, StatusRejected, StatusPending},
	StatusApproved: {StatusPending},
	StatusRejected: {StatusPending},
}
