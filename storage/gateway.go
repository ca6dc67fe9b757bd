package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/example/tasklist-service/domain/task"
	"github.com/example/tasklist-service/domain/user"
)

var (
	// ErrNoMatch is returned when a lookup or update matched no document.
	ErrNoMatch = errors.New("no matching document")

	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid object id")
)

// Config holds gateway connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	OpTimeout  time.Duration
}

// Gateway implements the document store operations over the User collection.
// The client is safe for concurrent use; WithSession scopes one session per
// logical operation.
type Gateway struct {
	client    *mongo.Client
	coll      *mongo.Collection
	opTimeout time.Duration
}

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*Gateway, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	g := New(client, cfg.Database, cfg.Collection, cfg.OpTimeout)
	if err := g.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return g, nil
}

// New wraps an existing client.
func New(client *mongo.Client, database, collection string, opTimeout time.Duration) *Gateway {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &Gateway{
		client:    client,
		coll:      client.Database(database).Collection(collection),
		opTimeout: opTimeout,
	}
}

// Ping checks connectivity to the primary.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()
	return g.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (g *Gateway) Close(ctx context.Context) error {
	if err := g.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// WithSession runs fn with a session bound to its context. The session is
// ended when fn returns, whatever the outcome.
func (g *Gateway) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	return g.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		return fn(sc)
	})
}

// ParseID converts a hex string to an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// FindTask returns the embedded task with the given id from whichever user
// owns it.
func (g *Gateway) FindTask(ctx context.Context, taskID string) (*task.Task, error) {
	tid, err := ParseID(taskID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	cursor, err := g.coll.Aggregate(ctx, findTaskPipeline(tid))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}

	var results []struct {
		Tasks []task.Task `bson:"tasks"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if len(results) == 0 || len(results[0].Tasks) == 0 {
		return nil, ErrNoMatch
	}
	return &results[0].Tasks[0], nil
}

// FindTasks returns the task array of a user.
func (g *Gateway) FindTasks(ctx context.Context, userID string) ([]task.Task, error) {
	uid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	var u user.User
	opts := options.FindOne().SetProjection(tasksProjection())
	if err := g.coll.FindOne(ctx, userFilter(uid), opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("failed to find user tasks: %w", err)
	}
	if u.Tasks == nil {
		return []task.Task{}, nil
	}
	return u.Tasks, nil
}

// FindUser returns a whole user document.
func (g *Gateway) FindUser(ctx context.Context, userID string) (*user.User, error) {
	uid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	var u user.User
	if err := g.coll.FindOne(ctx, userFilter(uid)).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if u.Tasks == nil {
		u.Tasks = []task.Task{}
	}
	return &u, nil
}

// InsertUser creates an empty user document.
func (g *Gateway) InsertUser(ctx context.Context) (*user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	u := &user.User{
		ID:    primitive.NewObjectID(),
		Tasks: []task.Task{},
	}
	if _, err := g.coll.InsertOne(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// PushTask appends t to the user's task array.
func (g *Gateway) PushTask(ctx context.Context, userID string, t task.Task) error {
	uid, err := ParseID(userID)
	if err != nil {
		return err
	}
	return g.updateOne(ctx, userFilter(uid), pushTaskUpdate(t))
}

// SetTask updates name, description and updated_at of one of the user's tasks.
func (g *Gateway) SetTask(ctx context.Context, userID, taskID string, in task.Input, at time.Time) error {
	uid, tid, err := parseIDs(userID, taskID)
	if err != nil {
		return err
	}
	return g.updateOne(ctx, userTaskFilter(uid, tid), setTaskUpdate(in, at))
}

// PullTask removes one of the user's tasks.
func (g *Gateway) PullTask(ctx context.Context, userID, taskID string) error {
	uid, tid, err := parseIDs(userID, taskID)
	if err != nil {
		return err
	}
	return g.updateOne(ctx, userTaskFilter(uid, tid), pullTaskUpdate(tid))
}

// IncrementCompleted adds one to the user's completed_tasks counter on its
// own. The task service does not call it: completing a task goes through
// CompleteTask, which pulls the task and increments in the same update.
func (g *Gateway) IncrementCompleted(ctx context.Context, userID string) error {
	uid, err := ParseID(userID)
	if err != nil {
		return err
	}
	return g.updateOne(ctx, userFilter(uid), incrementCompletedUpdate())
}

// CompleteTask removes one of the user's tasks and increments its
// completed_tasks counter in a single update.
func (g *Gateway) CompleteTask(ctx context.Context, userID, taskID string) error {
	uid, tid, err := parseIDs(userID, taskID)
	if err != nil {
		return err
	}
	return g.updateOne(ctx, userTaskFilter(uid, tid), completeTaskUpdate(tid))
}

func (g *Gateway) updateOne(ctx context.Context, filter, update any) error {
	ctx, cancel := context.WithTimeout(ctx, g.opTimeout)
	defer cancel()

	result, err := g.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

func parseIDs(userID, taskID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := ParseID(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	tid, err := ParseID(taskID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return uid, tid, nil
}
