package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fairlend/loanapp/internal/domain/event"
)

// ---------------------------------------------------------------------------
// Applicant aggregate root
// ---------------------------------------------------------------------------

// Applicant is an immutable aggregate identified uniquely by email.
// Every mutation returns a new copy.
type Applicant struct {
	id           string
	name         string
	email        string
	phone        string
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewApplicant creates a brand-new applicant. Email is the identity and is
// required; name and phone are free text.
func NewApplicant(name, email, phone string, now time.Time) (Applicant, error) {
	if email == "" {
		return Applicant{}, ValidationError{Field: "email", Reason: "is required"}
	}

	id := uuid.New().String()
	a := Applicant{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		createdAt: now,
		updatedAt: now,
	}
	a.domainEvents = append(a.domainEvents, event.NewApplicantRegistered(id, email))
	return a, nil
}

// ReconstructApplicant rebuilds an aggregate from persistence without side-effects.
func ReconstructApplicant(id, name, email, phone string, createdAt, updatedAt time.Time) Applicant {
	return Applicant{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// UpdateContact overwrites name and phone with the supplied values and returns
// the new copy together with the names of the fields that actually changed.
// Empty input fields are ignored; an unchanged aggregate reports no fields.
func (a Applicant) UpdateContact(name, phone string, now time.Time) (Applicant, []string) {
	next := a
	next.domainEvents = copyEvents(a.domainEvents)

	var changed []string
	if name != "" && name != a.name {
		next.name = name
		changed = append(changed, "name")
	}
	if phone != "" && phone != a.phone {
		next.phone = phone
		changed = append(changed, "phone")
	}

	if len(changed) > 0 {
		next.updatedAt = now
		next.domainEvents = append(next.domainEvents, event.NewApplicantContactUpdated(a.id, a.email, changed))
	}
	return next, changed
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Applicant) ID() string                        { return a.id }
func (a Applicant) Name() string                      { return a.name }
func (a Applicant) Email() string                     { return a.email }
func (a Applicant) Phone() string                     { return a.phone }
func (a Applicant) CreatedAt() time.Time              { return a.createdAt }
func (a Applicant) UpdatedAt() time.Time              { return a.updatedAt }
func (a Applicant) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a Applicant) ClearEvents() Applicant {
	next := a
	next.domainEvents = nil
	return next
}
