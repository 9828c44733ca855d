package storage

import "time"

// Submission is a completed song request. Records are appended in
// chronological order and never rewritten.
type Submission struct {
	Timestamp time.Time
	SenderID  string
	Artist    string
	Song      string
	Link      string // empty means no link
}

// SubmissionLog abstracts the durable, append-only store of submissions.
// Implementations must be safe for concurrent use; concurrent Append calls
// must never interleave bytes of different records.
type SubmissionLog interface {
	Append(s Submission) error
	CountBySender(senderID string) (int, error)
}
