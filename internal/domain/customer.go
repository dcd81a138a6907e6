package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Customer is the party an invoice is billed to
type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Validate ensures the customer has the fields an invoice page needs
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("customer name is required")
	}
	return nil
}
