package testutil

import (
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/google/uuid"
)

// Client options
type ClientOption func(*domain.Client)

func WithKind(k domain.ClientKind) ClientOption {
	return func(c *domain.Client) {
		c.Kind = k
	}
}

func WithEmail(email string) ClientOption {
	return func(c *domain.Client) {
		c.Email = email
	}
}

func WithPhone(phone string) ClientOption {
	return func(c *domain.Client) {
		c.Phone = phone
	}
}

func WithCity(city, postalCode string) ClientOption {
	return func(c *domain.Client) {
		c.City = city
		c.PostalCode = postalCode
	}
}

func WithInactive() ClientOption {
	return func(c *domain.Client) {
		c.Active = false
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      domain.ClientIndividual,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Intervention options
type InterventionOption func(*domain.Intervention)

func WithTimes(start, end string) InterventionOption {
	return func(i *domain.Intervention) {
		i.StartTime = start
		i.EndTime = end
	}
}

func WithAllDay() InterventionOption {
	return WithTimes("", "")
}

func WithPayment(p domain.PaymentStatus) InterventionOption {
	return func(i *domain.Intervention) {
		i.Payment = p
	}
}

func WithLocation(l domain.Location) InterventionOption {
	return func(i *domain.Intervention) {
		i.Location = l
	}
}

func WithDone() InterventionOption {
	return func(i *domain.Intervention) {
		i.Done = true
	}
}

func WithSummary(s string) InterventionOption {
	return func(i *domain.Intervention) {
		i.Summary = s
	}
}

// NewTestIntervention builds a timed 09:00-10:00 on-site intervention,
// unpaid and not done.
func NewTestIntervention(clientID, numero, date string, opts ...InterventionOption) *domain.Intervention {
	now := time.Now().UTC().Truncate(time.Second)
	i := &domain.Intervention{
		ID:        uuid.New().String(),
		Numero:    numero,
		ClientID:  clientID,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
		Location:  domain.LocationOnSite,
		Payment:   domain.PaymentUnpaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
