package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Stream names carried over NATS JetStream. Clients subscribe to these to
// know when to re-fetch authoritative state; payloads are advisory only.
const (
	StreamBetting  = "betting"
	StreamImposter = "imposter"
	StreamPartyTV  = "party-tv"
)

// EventBus defines the interface for publishing party events.
type EventBus interface {
	// Publish marshals payload to JSON and publishes it on the given stream
	// under the given subject.
	Publish(ctx context.Context, stream, subject string, payload any) error

	// Subscribe returns a channel of messages for the given subject.
	Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error)

	// CreateStream ensures the named stream exists before use.
	CreateStream(ctx context.Context, stream string) error

	Close() error
}
