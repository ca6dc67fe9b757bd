package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/tasklist-service/domain/task"
)

func TestFindTaskPipeline(t *testing.T) {
	tid := primitive.NewObjectID()
	pipeline := findTaskPipeline(tid)
	require.Len(t, pipeline, 3)

	match := pipeline[0].Map()["$match"].(bson.D).Map()
	assert.Equal(t, tid, match["tasks._id"])

	project := pipeline[1].Map()["$project"].(bson.D).Map()
	assert.Equal(t, 0, project["_id"])
	filter := project["tasks"].(bson.D).Map()["$filter"].(bson.D).Map()
	assert.Equal(t, "$tasks", filter["input"])
	cond := filter["cond"].(bson.D).Map()["$eq"].(bson.A)
	assert.Equal(t, bson.A{"$$task._id", tid}, cond)

	assert.Equal(t, 1, pipeline[2].Map()["$limit"])
}

func TestUserTaskFilter(t *testing.T) {
	uid, tid := primitive.NewObjectID(), primitive.NewObjectID()
	filter := userTaskFilter(uid, tid).Map()

	assert.Equal(t, uid, filter["_id"])
	assert.Equal(t, tid, filter["tasks._id"])
}

func TestSetTaskUpdate(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	set := setTaskUpdate(task.Input{Name: "n", Description: "d"}, at).Map()["$set"].(bson.D).Map()

	assert.Len(t, set, 3)
	assert.Equal(t, "n", set["tasks.$.name"])
	assert.Equal(t, "d", set["tasks.$.description"])
	assert.Equal(t, at, set["tasks.$.updated_at"])
	assert.NotContains(t, set, "tasks.$.created_at")
}

func TestPushTaskUpdate(t *testing.T) {
	tk := task.New(task.Input{Name: "Buy milk", Description: "2%"}, time.Now())
	push := pushTaskUpdate(tk).Map()["$push"].(bson.D).Map()
	assert.Equal(t, tk, push["tasks"])
}

func TestIncrementCompletedUpdate(t *testing.T) {
	update := incrementCompletedUpdate().Map()
	require.Len(t, update, 1)
	assert.Equal(t, 1, update["$inc"].(bson.D).Map()["completed_tasks"])
}

func TestCompleteTaskUpdate(t *testing.T) {
	tid := primitive.NewObjectID()
	update := completeTaskUpdate(tid).Map()
	require.Len(t, update, 2)

	pull := update["$pull"].(bson.D).Map()["tasks"].(bson.D).Map()
	assert.Equal(t, tid, pull["_id"])

	inc := update["$inc"].(bson.D).Map()
	assert.Equal(t, 1, inc["completed_tasks"])

	// building the complete update must not alias the pull update
	assert.Len(t, pullTaskUpdate(tid), 1)
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ParseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = ParseID("not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, _, err = parseIDs(oid.Hex(), "")
	assert.ErrorIs(t, err, ErrInvalidID)
}
