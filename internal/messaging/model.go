package messaging

import "time"

type Message struct {
	ID            string
	TenantID      string
	ApplicationID string
	SenderID      *string
	SenderRole    string
	Body          string
	ReadAt        *time.Time
	CreatedAt     time.Time
}
