package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Board is the stored document: a named board embedding all of its threads.
// Version is bumped by every successful save and never leaves the backend.
type Board struct {
	Name    BoardName `json:"name" bson:"name"`
	Threads []*Thread `json:"threads" bson:"threads"`
	Version int64     `json:"-" bson:"version"`
}

func NewBoard(name BoardName) *Board {
	return &Board{Name: name, Threads: []*Thread{}}
}

// Thread returns the embedded thread with the given id.
func (b *Board) Thread(id ThreadId) (*Thread, bool) {
	return lo.Find(b.Threads, func(t *Thread) bool { return t.Id == id })
}

func (b *Board) AddThread(t *Thread) {
	b.Threads = append(b.Threads, t)
}

// Preview returns up to nThreads threads, most recently bumped first, each
// carrying at most nReplies reply previews. The board itself is not reordered.
func (b *Board) Preview(nThreads, nReplies int) []ThreadPreview {
	sorted := slices.Clone(b.Threads)
	slices.SortStableFunc(sorted, func(x, y *Thread) int {
		return y.BumpedOn.Compare(x.BumpedOn)
	})
	top := lo.Subset(sorted, 0, uint(max(0, nThreads)))
	return lo.Map(top, func(t *Thread, _ int) ThreadPreview {
		return t.Preview(nReplies)
	})
}

// Clone returns a deep copy, so stores can hand out documents without aliasing.
func (b *Board) Clone() *Board {
	return &Board{
		Name:    b.Name,
		Version: b.Version,
		Threads: lo.Map(b.Threads, func(t *Thread, _ int) *Thread { return t.Clone() }),
	}
}

// ThreadPreview is the field-limited thread shape of the board listing.
type ThreadPreview struct {
	Id         ThreadId       `json:"_id"`
	Text       Text           `json:"text"`
	CreatedOn  time.Time      `json:"created_on"`
	BumpedOn   time.Time      `json:"bumped_on"`
	Replies    []ReplyPreview `json:"replies"`
	ReplyCount int            `json:"replycount"`
}

// ReplyPreview hides reported and delete_password.
type ReplyPreview struct {
	Id        ReplyId   `json:"_id"`
	Text      Text      `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}
