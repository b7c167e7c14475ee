package domain

import (
	"time"

	"github.com/samber/lo"

	"github.com/msgboard/msgboard/shared/errors"
)

type Thread struct {
	Id             ThreadId  `json:"_id" bson:"_id"`
	Text           Text      `json:"text" bson:"text"`
	DeletePassword Password  `json:"delete_password" bson:"delete_password"`
	CreatedOn      time.Time `json:"created_on" bson:"created_on"`
	BumpedOn       time.Time `json:"bumped_on" bson:"bumped_on"`
	Reported       bool      `json:"reported" bson:"reported"`
	Replies        []*Reply  `json:"replies" bson:"replies"`
}

// NewThread creates a thread whose created_on and bumped_on are both now.
func NewThread(text Text, password Password, now time.Time) *Thread {
	now = Timestamp(now)
	return &Thread{
		Id:             NewId(),
		Text:           text,
		DeletePassword: password,
		CreatedOn:      now,
		BumpedOn:       now,
		Replies:        []*Reply{},
	}
}

// Reply returns the embedded reply with the given id.
func (t *Thread) Reply(id ReplyId) (*Reply, bool) {
	return lo.Find(t.Replies, func(r *Reply) bool { return r.Id == id })
}

// AddReply appends r and bumps the thread to the reply's creation time.
func (t *Thread) AddReply(r *Reply) {
	t.Replies = append(t.Replies, r)
	t.bump(r.CreatedOn)
}

func (t *Thread) Report(now time.Time) {
	t.Reported = true
	t.bump(now)
}

// Delete soft-deletes the thread when password matches.
func (t *Thread) Delete(password Password) error {
	if t.DeletePassword != password {
		return errors.WrongPassword
	}
	t.Text = DeletedText
	return nil
}

func (t *Thread) Preview(nReplies int) ThreadPreview {
	shown := lo.Subset(t.Replies, 0, uint(max(0, nReplies)))
	return ThreadPreview{
		Id:        t.Id,
		Text:      t.Text,
		CreatedOn: t.CreatedOn,
		BumpedOn:  t.BumpedOn,
		Replies: lo.Map(shown, func(r *Reply, _ int) ReplyPreview {
			return ReplyPreview{Id: r.Id, Text: r.Text, CreatedOn: r.CreatedOn}
		}),
		ReplyCount: len(t.Replies),
	}
}

func (t *Thread) Clone() *Thread {
	c := *t
	c.Replies = lo.Map(t.Replies, func(r *Reply, _ int) *Reply { return r.Clone() })
	return &c
}

// bumped_on never goes below created_on
func (t *Thread) bump(now time.Time) {
	now = Timestamp(now)
	if now.Before(t.CreatedOn) {
		now = t.CreatedOn
	}
	t.BumpedOn = now
}
