package model

import "time"

const (
	ResourcePost    = "post"
	ResourceComment = "comment"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ContentEvent is published after a successful post or comment mutation.
type ContentEvent struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ResourceID uint      `json:"resource_id"`
	ActorID    uint      `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Activity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Resource   string    `gorm:"size:16;not null;index:idx_activity_resource" json:"resource"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	ResourceID uint      `gorm:"not null;index:idx_activity_resource" json:"resource_id"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
