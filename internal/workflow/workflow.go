// Package workflow modela los ciclos de vida create -> process (approve/reject)
// de las entidades con status.
package workflow

import (
	"strings"

	"pet-marketplace/internal/platform/apperr"
)

// Status es el valor persistido en la columna status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApplied  Status = "APPLIED"
	StatusAccepted Status = "ACCEPTED"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Deleted no es un status real; se usa en métricas cuando el reject borra la fila.
const Deleted = "DELETED"

// Decision es la acción de quien procesa.
type Decision string

const (
	Approve Decision = "APPROVE"
	Reject  Decision = "REJECT"
)

// ParseDecision acepta las variantes que mandan los clientes
// ("APPROVE", "accept", "ACCEPTED", "rejected"...).
func ParseDecision(s string) (Decision, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "APPROVE", "APPROVED", "ACCEPT", "ACCEPTED":
		return Approve, nil
	case "REJECT", "REJECTED":
		return Reject, nil
	case "":
		return "", apperr.Validation("action is required")
	}
	return "", apperr.Validation("invalid action").WithDetails("expected APPROVE or REJECT, got " + s)
}

// Machine describe un workflow de dos o tres estados.
type Machine struct {
	Name     string
	Initial  Status
	Approved Status
	Rejected Status
	// DeleteOnReject: el reject borra la fila en vez de dejar un REJECTED.
	DeleteOnReject bool
	// AlreadyMessage es el error 400 cuando la fila ya salió del estado inicial.
	AlreadyMessage string
}

// Outcome es la transición que el service debe persistir.
type Outcome struct {
	From   Status
	To     Status
	Delete bool
}

// MetricLabel es el valor "to" para metrics.RecordTransition.
func (o Outcome) MetricLabel() string {
	if o.Delete {
		return Deleted
	}
	return string(o.To)
}

// Apply calcula la transición. Solo se procesa desde Initial.
func (m Machine) Apply(current Status, d Decision) (Outcome, error) {
	if current != m.Initial {
		msg := m.AlreadyMessage
		if msg == "" {
			msg = "Already processed"
		}
		return Outcome{}, apperr.Validation(msg).WithDetails("current status is " + string(current))
	}
	switch d {
	case Approve:
		return Outcome{From: current, To: m.Approved}, nil
	case Reject:
		if m.DeleteOnReject {
			return Outcome{From: current, Delete: true}, nil
		}
		return Outcome{From: current, To: m.Rejected}, nil
	}
	return Outcome{}, apperr.Validation("invalid action")
}

// IsTerminal reporta si s ya no admite process.
func (m Machine) IsTerminal(s Status) bool {
	return s != m.Initial
}

var (
	ClubMembership = Machine{
		Name: "club_membership", Initial: StatusPending,
		Approved: StatusAccepted, DeleteOnReject: true,
		AlreadyMessage: "Request already processed",
	}
	KennelMembership = Machine{
		Name: "kennel_membership", Initial: StatusPending,
		Approved: StatusAccepted, DeleteOnReject: true,
		AlreadyMessage: "Request already processed",
	}
	Enrollment = Machine{
		Name: "course_enrollment", Initial: StatusApplied,
		Approved: StatusApproved, Rejected: StatusRejected,
		AlreadyMessage: "Enrollment already processed",
	}
	Entry = Machine{
		Name: "competition_entry", Initial: StatusPending,
		Approved: StatusAccepted, Rejected: StatusRejected,
		AlreadyMessage: "Entry already processed",
	}
	Awarder = Machine{
		Name: "competition_awarder", Initial: StatusPending,
		Approved: StatusAccepted, Rejected: StatusRejected,
		AlreadyMessage: "Nomination already processed",
	}
	Certification = Machine{
		Name: "certification", Initial: StatusPending,
		Approved: StatusApproved, Rejected: StatusRejected,
		AlreadyMessage: "Certification already processed",
	}
	Submission = Machine{
		Name: "certificate_submission", Initial: StatusPending,
		Approved: StatusAccepted, Rejected: StatusRejected,
		AlreadyMessage: "Submission already processed",
	}
	Match = Machine{
		Name: "match", Initial: StatusPending,
		Approved: StatusAccepted, Rejected: StatusRejected,
		AlreadyMessage: "Already responded",
	}
	PetLink = Machine{
		Name: "pet_kennel_link", Initial: StatusPending,
		Approved: StatusApproved, Rejected: StatusRejected,
		AlreadyMessage: "Link request already processed",
	}
)

// ProcessRequest es el body común de los endpoints .../process.
type ProcessRequest struct {
	Action string `json:"action" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}
