package domain

import (
	"time"
)

// ClientStatus type for the membership state of a client
type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s ClientStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// DateLayout is the calendar date format used for StartDate.
const DateLayout = "2006-01-02"

// Client is a studio member. Plans are referenced by ID, never embedded.
type Client struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	SubscriptionIDs []string     `json:"subscriptionIds"`
	StartDate       string       `json:"startDate"`
	Status          ClientStatus `json:"status"`
}

// FullName joins first and last name for display.
func (c *Client) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Today returns the current UTC date formatted with DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// NewClientDefaults returns the blank client an edit form starts from.
func NewClientDefaults() Client {
	return Client{
		SubscriptionIDs: []string{},
		StartDate:       Today(),
		Status:          StatusActive,
	}
}
