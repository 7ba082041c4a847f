package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousName is used when a visitor submits feedback without a name.
const AnonymousName = "익명"

// Feedback is a single visitor comment attached to a page slug. Records are
// insert-only: never updated after creation, removed only by explicit delete.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug      string             `bson:"slug" json:"slug"`
	Name      string             `bson:"name" json:"name"`
	Message   string             `bson:"message" json:"message"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	ClientID  string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
