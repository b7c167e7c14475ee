package domain

import (
	"time"

	"github.com/google/uuid"
)

type (
	BoardName = string
	ThreadId  = string
	ReplyId   = string
	Password  = string
	Text      = string
)

// DeletedText replaces the text of soft-deleted threads and replies.
const DeletedText Text = "[deleted]"

func NewId() string {
	return uuid.NewString()
}

// Timestamp normalizes t the way documents store it: UTC, millisecond precision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Board          BoardName
	Text           Text
	DeletePassword Password
}

type ReplyCreationData struct {
	Board          BoardName
	ThreadId       ThreadId
	Text           Text
	DeletePassword Password
}
