package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedNote is the persisted form of a reviewed note.
type SavedNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NoteID    string             `bson:"note_id" json:"note_id"` // uuid v4
	SessionID string             `bson:"session_id" json:"session_id"`

	Note       ClinicalNote `bson:"note" json:"note"`
	Transcript string       `bson:"transcript" json:"transcript"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
