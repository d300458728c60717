package domain

import "time"

// ResponseRecordID identifies a persisted agent response.
type ResponseRecordID string

// ResponseRecord is one durable copy of an agent's response, written by the
// save tool. Records are append-only: saving the same content twice yields
// two independent records.
type ResponseRecord struct {
	ID        ResponseRecordID
	SessionID SessionID
	UserID    UserID
	AgentName string
	Content   string
	CreatedAt time.Time
}
