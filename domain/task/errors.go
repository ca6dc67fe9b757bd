package task

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them with errors.Is.
var (
	// ErrNotFound is returned when a referenced user or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage is returned for any fault in the document store layer.
	ErrStorage = errors.New("storage error")

	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// Wire codes carried in service responses.
const (
	CodeNotFound       = "not_found"
	CodeStorage        = "storage_error"
	CodeInvalidRequest = "invalid_request"
)

// Resource names used in NotFoundError.
const (
	ResourceTask = "task"
	ResourceUser = "user"
)

// Op names a lifecycle operation for StorageError messages.
type Op string

const (
	OpGet      Op = "get"
	OpList     Op = "list"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpComplete Op = "complete"

	OpCreateUser Op = "create-user"
	OpGetUser    Op = "get-user"

	OpListActivity Op = "list-activity"
)

var storageMessages = map[Op]string{
	OpGet:      "There is an error getting the task, try again later",
	OpList:     "There is an error getting all the tasks, try again later",
	OpCreate:   "There is an error creating a task, try again later",
	OpUpdate:   "There is an error updating the task, try again later",
	OpDelete:   "There is an error deleting the task, try again later",
	OpComplete: "There is an error completing the task, try again later",

	OpCreateUser: "There is an error creating the user, try again later",
	OpGetUser:    "There is an error getting the user, try again later",

	OpListActivity: "There is an error getting the activity, try again later",
}

// NotFoundError reports a missing user or task.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource == ResourceUser {
		return fmt.Sprintf("User with ID %s wasn't found", e.ID)
	}
	return fmt.Sprintf("Task with ID %s, wasn't found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError collapses every store fault of one operation into a single
// generic message. Err is kept for logging only.
type StorageError struct {
	Op  Op
	Err error
}

func (e *StorageError) Error() string {
	if msg, ok := storageMessages[e.Op]; ok {
		return msg
	}
	return "There is an error with the task store, try again later"
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// InvalidRequestError reports a request that failed validation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NotFound returns a NotFoundError for a task id.
func NotFound(taskID string) error {
	return &NotFoundError{Resource: ResourceTask, ID: taskID}
}

// UserNotFound returns a NotFoundError for a user id.
func UserNotFound(userID string) error {
	return &NotFoundError{Resource: ResourceUser, ID: userID}
}

// Storage wraps a store fault for the given operation.
func Storage(op Op, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Code returns the wire code for err, or "" when err is nil.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeStorage
	}
}

// remoteError is an error decoded from a service response. It keeps the
// sender's message and matches the sentinel for its code.
type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Is(target error) bool { return target == e.sentinel }

// FromCode rebuilds an error from a wire code and message. An empty code
// yields nil.
func FromCode(code, msg string) error {
	switch code {
	case "":
		return nil
	case CodeNotFound:
		return &remoteError{sentinel: ErrNotFound, msg: msg}
	case CodeInvalidRequest:
		return &remoteError{sentinel: ErrInvalidRequest, msg: msg}
	default:
		return &remoteError{sentinel: ErrStorage, msg: msg}
	}
}

// Failure is the wire form of an error inside a service response.
type Failure struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Err rebuilds the error described by f, or nil.
func (f Failure) Err() error {
	return FromCode(f.Code, f.Error)
}

// NewFailure encodes err for a service response.
func NewFailure(err error) Failure {
	return Failure{Code: Code(err), Error: err.Error()}
}
