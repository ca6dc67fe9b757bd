package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/tasklist-service/domain/task"
)

// User is the persisted account document. Tasks are embedded, completed
// tasks are only remembered through the CompletedTasks counter.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tasks          []task.Task        `bson:"tasks" json:"tasks"`
	CompletedTasks int                `bson:"completed_tasks" json:"completed_tasks"`
}

// Summary is the public view of a user.
type Summary struct {
	ID             string `json:"id"`
	TaskCount      int    `json:"task_count"`
	CompletedTasks int    `json:"completed_tasks"`
}

// Summary reports the open task count and the completed counter.
func (u User) Summary() Summary {
	return Summary{
		ID:             u.ID.Hex(),
		TaskCount:      len(u.Tasks),
		CompletedTasks: u.CompletedTasks,
	}
}
