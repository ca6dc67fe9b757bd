package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a todo item embedded in its owner's User document.
type Task struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Input is the caller-supplied part of a task.
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Timestamp normalises t to UTC at the millisecond precision the document
// store keeps, so a returned task equals the one read back later.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// New builds a task with a fresh id and both timestamps set to now.
func New(in Input, now time.Time) Task {
	now = Timestamp(now)
	return Task{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
