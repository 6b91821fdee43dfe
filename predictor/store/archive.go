/* archive.go
 * Contains the optional MongoDB archive of completed brackets. When a Mongo URI is configured,
 * every finished run is inserted into the completed_brackets collection so past predictions can
 * be compared across runs. Archive failures are reported to the caller but never block a run.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bracket-bot/predictor/shared"
)

type Archive struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Collection *mongo.Collection
}

// ArchivedBracket is the document stored for one completed run.
type ArchivedBracket struct {
	RunName        string    `bson:"run_name"`
	TournamentName string    `bson:"tournament_name"`
	Champion       string    `bson:"champion"`
	CompletedAt    time.Time `bson:"completed_at"`
	Bracket        bson.Raw  `bson:"bracket"`
}

// NewArchive connects to MongoDB and prepares the completed_brackets collection.
// Preconditions: mongoURI is a reachable MongoDB connection string
// Postconditions: returns an Archive bound to dbName, or an error if the connection failed
func NewArchive(dbName string, mongoURI string) (*Archive, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	return &Archive{
		Client:     client,
		Database:   db,
		Collection: db.Collection("completed_brackets"),
	}, nil
}

// ArchiveFinal inserts a completed bracket into the archive collection.
// Preconditions: t is a fully predicted tournament
// Postconditions: one ArchivedBracket document is inserted, or an error is returned
func (a *Archive) ArchiveFinal(ctx context.Context, t *shared.Tournament, runName string) error {
	champion := t.Champion()
	if champion == "" {
		return fmt.Errorf("tournament has no champion, refusing to archive an unfinished bracket")
	}

	raw, err := bson.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode bracket: %w", err)
	}

	doc := ArchivedBracket{
		RunName:        runName,
		TournamentName: t.TournamentName,
		Champion:       champion,
		CompletedAt:    time.Now().UTC(),
		Bracket:        raw,
	}
	if _, err := a.Collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("bracket archive insert failed: %w", err)
	}
	return nil
}

// Close disconnects the underlying MongoDB client.
func (a *Archive) Close(ctx context.Context) error {
	return a.Client.Disconnect(ctx)
}
