package announcements

import "context"

// Publisher delivers moderation events to interested consumers.
type Publisher interface {
	PublishModerated(ctx context.Context, event ModeratedEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishModerated(context.Context, ModeratedEvent) error {
	return nil
}
