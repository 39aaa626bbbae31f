package model

import (
	"strings"
	"time"
)

// Client is a row in clients.csv.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time // zero when missing
}

// HasEmail reports whether the client has a non-blank email address.
func (c Client) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}
