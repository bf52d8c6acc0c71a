package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FAQ is one scripted question/answer pair the chat widget matches user
// messages against. Keywords is a free-text list of extra match terms.
type FAQ struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Category  string        `json:"categoria" bson:"category"`
	Question  string        `json:"pregunta" bson:"question" validate:"required"`
	Answer    string        `json:"respuesta" bson:"answer" validate:"required"`
	Keywords  string        `json:"palabras_clave,omitempty" bson:"keywords,omitempty"`
	Active    bool          `json:"activo" bson:"active"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// ChatInteraction records one widget exchange for later review.
type ChatInteraction struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID  string        `json:"sender_id" bson:"sender_id"`
	Message   string        `json:"message" bson:"message"`
	Response  string        `json:"response" bson:"response"`
	Intent    string        `json:"intent" bson:"intent"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

type ChatMessageRequest struct {
	Message  string `json:"message" binding:"required"`
	SenderID string `json:"sender_id" binding:"required"`
}

// ChatReply mirrors the widget's expected response shape; a single request
// can produce several replies.
type ChatReply struct {
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
