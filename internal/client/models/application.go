package models

import "time"

// ApplicationStatus is the lifecycle state of a visa application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Application is a visa application record as returned by the backend.
// Applicants see their own; officers and admins see everyone's.
type Application struct {
	ID             string            `json:"id"`
	ApplicantID    string            `json:"applicantId"`
	ApplicantEmail string            `json:"applicantEmail,omitempty"`
	PassportNumber string            `json:"passportNumber"`
	Destination    string            `json:"destination"`
	VisaType       string            `json:"visaType"`
	Purpose        string            `json:"purpose,omitempty"`
	Status         ApplicationStatus `json:"status"`
	DecisionNote   string            `json:"decisionNote,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	DecidedAt      *time.Time        `json:"decidedAt,omitempty"`
}

// ApplicationInput is the payload for submitting a new application.
type ApplicationInput struct {
	PassportNumber string `json:"passportNumber"`
	Destination    string `json:"destination"`
	VisaType       string `json:"visaType"`
	Purpose        string `json:"purpose,omitempty"`
}

// DecisionInput records an officer's or admin's decision on an application.
type DecisionInput struct {
	Status ApplicationStatus `json:"status"`
	Note   string            `json:"note,omitempty"`
}

// Stats is the platform summary shown on officer and admin dashboards.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
