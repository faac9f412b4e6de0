package contact

import (
	"fmt"
	"time"
)

type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Email == "" {
		return fmt.Errorf("email is required")
	}
	if m.Message == "" {
		return fmt.Errorf("message body is required")
	}

	return nil
}
