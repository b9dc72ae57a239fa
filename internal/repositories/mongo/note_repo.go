package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/utils"
)

type NoteRepository interface {
	Create(ctx context.Context, n *models.SavedNote) error
	GetByNoteID(ctx context.Context, noteID string) (*models.SavedNote, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.SavedNote, error)
	Upsert(ctx context.Context, n *models.SavedNote) error
}

type noteRepo struct {
	col *mongo.Collection
}

func NewNoteRepo(db *mongo.Database) NoteRepository {
	return &noteRepo{col: db.Collection("notes")}
}

func (r *noteRepo) Create(ctx context.Context, n *models.SavedNote) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.UpdatedAt = n.CreatedAt
	_, err := r.col.InsertOne(ctx, n)
	return err
}

func (r *noteRepo) GetByNoteID(ctx context.Context, noteID string) (*models.SavedNote, error) {
	var n models.SavedNote
	err := r.col.FindOne(ctx, bson.M{"note_id": noteID}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &n, err
}

func (r *noteRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.SavedNote, error) {
	var n models.SavedNote
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &n, err
}

// Upsert keeps one saved note per session: re-saving after further edits
// replaces the stored copy.
func (r *noteRepo) Upsert(ctx context.Context, n *models.SavedNote) error {
	now := time.Now().UTC()
	n.UpdatedAt = now

	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": n.SessionID},
		bson.M{
			"$set": bson.M{
				"note_id":    n.NoteID,
				"note":       n.Note,
				"transcript": n.Transcript,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
