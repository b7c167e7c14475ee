package errors

import (
	"errors"
	"fmt"
)

// Entity names a document level inside a board.
type Entity string

const (
	BoardEntity  Entity = "board"
	ThreadEntity Entity = "thread"
	ReplyEntity  Entity = "reply"
)

// NotFound is returned when a board, thread or reply lookup misses.
type NotFound struct {
	Entity Entity
	Id     string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Id)
}

// Validation carries a message that is safe to show to the client.
type Validation struct {
	Message string
}

func (e *Validation) Error() string {
	return e.Message
}

var WrongPassword = errors.New("incorrect password")

// Conflict means the board changed between read and save.
var Conflict = errors.New("board was modified concurrently")

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFound for the given entity.
func IsNotFound(err error, entity Entity) bool {
	var nf *NotFound
	return errors.As(err, &nf) && nf.Entity == entity
}
