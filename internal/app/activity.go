package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"toyboard/internal/model"
)

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

// activityRecorder publishes after commit. A failed publish is logged and
// never undoes the mutation.
type activityRecorder struct {
	publisher ActivityPublisher
}

func (a activityRecorder) record(ctx context.Context, action, subjectType string, subjectID uint, caller Caller) {
	if a.publisher == nil {
		return
	}
	event := model.ActivityEvent{
		EventID:     uuid.NewString(),
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		OccurredAt:  time.Now().UTC(),
	}
	if caller.Authenticated() {
		memberID := caller.MemberID
		event.MemberID = &memberID
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish activity %s for %s %d failed: %v", action, subjectType, subjectID, err)
	}
}
