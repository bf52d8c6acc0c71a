package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	TicketStatusPending    = "pendiente"
	TicketStatusInProgress = "en_proceso"
	TicketStatusResolved   = "resuelto"
)

func IsValidTicketStatus(status string) bool {
	switch status {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// Ticket is a support ticket, created from the admin panel or by the chat
// widget when a conversation is escalated to a human agent.
type Ticket struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Number       int64         `json:"ticket_id" bson:"number" validate:"required,gt=0"`
	CustomerID   bson.ObjectID `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	Conversation string        `json:"conversation" bson:"conversation" validate:"required"`
	Status       string        `json:"estado" bson:"status" validate:"required"`
	Notes        string        `json:"notas,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

func (t *Ticket) SetTimestamps() {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

type UpdateTicketStatusRequest struct {
	Estado string `json:"estado" binding:"required"`
}

type UpdateTicketNotesRequest struct {
	Notas string `json:"notas" binding:"required"`
}
