package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo handles the persistence of maze records.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or updates a maze in the repository.
// If the maze already exists, it updates the existing record.
// If the maze does not exist, it adds a new record.
func (r *MazeRepo) Save(ctx context.Context, maze *domain.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": maze.ID}
	update := bson.M{
		"$set": bson.M{
			"width":       maze.Width,
			"height":      maze.Height,
			"entranceRow": maze.EntranceRow,
			"exitRow":     maze.ExitRow,
			"algorithm":   maze.Algorithm,
			"imported":    maze.Imported,
			"perfect":     maze.Perfect,
			"walls":       maze.Walls,
			"updatedAt":   time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": maze.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a maze by its ID.
// Returns domain.ErrMazeNotFound if the maze is not found.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var maze domain.Maze
	if err := r.collection.FindOne(ctx, filter).Decode(&maze); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &maze, nil
}

// Delete removes a maze by its ID.
// Returns domain.ErrMazeNotFound if the maze is not found.
func (r *MazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	if result.DeletedCount == 0 {
		return domain.ErrMazeNotFound
	}
	return nil
}
