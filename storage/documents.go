package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/tasklist-service/domain/task"
)

// Query and update documents used by Gateway. Kept as plain builders so the
// shapes can be checked without a server.

func userFilter(userID primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: userID}}
}

func userTaskFilter(userID, taskID primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: userID},
		{Key: "tasks._id", Value: taskID},
	}
}

// findTaskPipeline matches the user embedding taskID and projects only that
// element of its tasks array.
func findTaskPipeline(taskID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "tasks._id", Value: taskID}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "tasks", Value: bson.D{
				{Key: "$filter", Value: bson.D{
					{Key: "input", Value: "$tasks"},
					{Key: "as", Value: "task"},
					{Key: "cond", Value: bson.D{
						{Key: "$eq", Value: bson.A{"$$task._id", taskID}},
					}},
				}},
			}},
		}}},
		{{Key: "$limit", Value: 1}},
	}
}

func tasksProjection() bson.D {
	return bson.D{{Key: "tasks", Value: 1}}
}

func pushTaskUpdate(t task.Task) bson.D {
	return bson.D{{Key: "$push", Value: bson.D{{Key: "tasks", Value: t}}}}
}

// setTaskUpdate touches only name, description and updated_at of the
// element matched by the positional operator.
func setTaskUpdate(in task.Input, at time.Time) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "tasks.$.name", Value: in.Name},
		{Key: "tasks.$.description", Value: in.Description},
		{Key: "tasks.$.updated_at", Value: at},
	}}}
}

func pullTaskUpdate(taskID primitive.ObjectID) bson.D {
	return bson.D{{Key: "$pull", Value: bson.D{
		{Key: "tasks", Value: bson.D{{Key: "_id", Value: taskID}}},
	}}}
}

func incrementCompletedUpdate() bson.D {
	return bson.D{{Key: "$inc", Value: bson.D{{Key: "completed_tasks", Value: 1}}}}
}

// completeTaskUpdate removes the task and bumps the counter in one statement.
func completeTaskUpdate(taskID primitive.ObjectID) bson.D {
	return append(pullTaskUpdate(taskID), incrementCompletedUpdate()...)
}
