package domain

import (
	"time"

	"github.com/msgboard/msgboard/shared/errors"
)

// Reply is embedded in its thread. BumpedOn is only set once the reply is reported.
type Reply struct {
	Id             ReplyId    `json:"_id" bson:"_id"`
	Text           Text       `json:"text" bson:"text"`
	DeletePassword Password   `json:"delete_password" bson:"delete_password"`
	CreatedOn      time.Time  `json:"created_on" bson:"created_on"`
	Reported       bool       `json:"reported" bson:"reported"`
	BumpedOn       *time.Time `json:"bumped_on,omitempty" bson:"bumped_on,omitempty"`
}

func NewReply(text Text, password Password, now time.Time) *Reply {
	return &Reply{
		Id:             NewId(),
		Text:           text,
		DeletePassword: password,
		CreatedOn:      Timestamp(now),
	}
}

func (r *Reply) Report(now time.Time) {
	now = Timestamp(now)
	r.Reported = true
	r.BumpedOn = &now
}

// Delete soft-deletes the reply when password matches.
func (r *Reply) Delete(password Password) error {
	if r.DeletePassword != password {
		return errors.WrongPassword
	}
	r.Text = DeletedText
	return nil
}

func (r *Reply) Clone() *Reply {
	c := *r
	if r.BumpedOn != nil {
		bumped := *r.BumpedOn
		c.BumpedOn = &bumped
	}
	return &c
}
