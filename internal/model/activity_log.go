package model

import "time"

const (
	ActionMemberJoined    = "member.joined"
	ActionMemberWithdrawn = "member.withdrawn"
	ActionBoardCreated    = "board.created"
	ActionBoardUpdated    = "board.updated"
	ActionBoardDeleted    = "board.deleted"
	ActionCommentCreated  = "comment.created"
	ActionCommentUpdated  = "comment.updated"
	ActionCommentDeleted  = "comment.deleted"

	SubjectMember  = "member"
	SubjectBoard   = "board"
	SubjectComment = "comment"
)

// ActivityEvent is the message published after a mutation commits.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	Action      string    `json:"action"`
	SubjectType string    `json:"subject_type"`
	SubjectID   uint      `json:"subject_id"`
	MemberID    *uint     `json:"member_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     string    `gorm:"size:36;not null;uniqueIndex" json:"event_id"`
	Action      string    `gorm:"size:32;not null;index" json:"action"`
	SubjectType string    `gorm:"size:16;not null" json:"subject_type"`
	SubjectID   uint      `gorm:"not null" json:"subject_id"`
	MemberID    *uint     `gorm:"index" json:"member_id"`
	OccurredAt  time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e ActivityEvent) ToLog() ActivityLog {
	return ActivityLog{
		EventID:     e.EventID,
		Action:      e.Action,
		SubjectType: e.SubjectType,
		SubjectID:   e.SubjectID,
		MemberID:    e.MemberID,
		OccurredAt:  e.OccurredAt,
	}
}
