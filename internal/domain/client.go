package domain

import (
	"strings"
	"time"
)

type Client struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Phone2     string
	Address    string
	PostalCode string
	City       string
	Kind       ClientKind
	Notes      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate returns the field-level violations for a client about to be saved.
func (c *Client) Validate() Violations {
	v := Violations{}
	if strings.TrimSpace(c.Name) == "" {
		v.Add("name", "name is required")
	}
	if !ValidClientKinds[c.Kind] {
		v.Add("kind", "kind must be Particulier or Professionnel")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		v.Add("email", "email address is malformed")
	}
	return v
}

// ShortID returns the first 8 characters of the ID for display.
func (c *Client) ShortID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}

// Violations maps a field name to a human-readable message.
type Violations map[string]string

// Add records the first violation reported for a field.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

func (v Violations) Empty() bool { return len(v) == 0 }
