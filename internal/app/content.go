package app

import (
	"context"
	"log/slog"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/pkg/logger"
)

// RecentLimit is how many items the public recent listings return.
const RecentLimit = 10

// PostListCache caches the recent posts listing. SetRecent must refuse a
// listing read under a generation that Invalidate has since moved past.
type PostListCache interface {
	GetRecent(ctx context.Context) ([]model.PostView, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetRecent(ctx context.Context, generation int64, posts []model.PostView) (bool, error)
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.ContentEvent) error
}

// contentHooks holds the best-effort side effects that follow a committed
// mutation. Their failures are logged and never reach the caller.
type contentHooks struct {
	postList  PostListCache
	publisher EventPublisher
	log       *slog.Logger
}

func newContentHooks(postList PostListCache, publisher EventPublisher, log *slog.Logger) contentHooks {
	if log == nil {
		log = logger.Discard()
	}
	return contentHooks{postList: postList, publisher: publisher, log: log}
}

func (h contentHooks) changed(ctx context.Context, resource, action string, resourceID, actorID uint) {
	if h.postList != nil {
		if err := h.postList.Invalidate(ctx); err != nil {
			h.log.WarnContext(ctx, "invalidate recent posts cache failed", "error", err)
		}
	}
	if h.publisher != nil {
		event := model.ContentEvent{
			Resource:   resource,
			Action:     action,
			ResourceID: resourceID,
			ActorID:    actorID,
			OccurredAt: time.Now().UTC(),
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.log.WarnContext(ctx, "publish content event failed",
				"resource", resource, "action", action, "resource_id", resourceID, "error", err)
		}
	}
}
