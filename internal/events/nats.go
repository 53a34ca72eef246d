package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes each event on "<prefix>.<type>", e.g. "microblog.post.created"
type NatsPublisher struct {
	nc     *nats.Conn
	prefix string
}

// ConnectNats dials url and returns a publisher using subject prefix
func ConnectNats(url, prefix string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("microblog"))
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return &NatsPublisher{nc: nc, prefix: prefix}, nil
}

func (p *NatsPublisher) Subject(t Type) string {
	if p.prefix == "" {
		return string(t)
	}
	return p.prefix + "." + string(t)
}

func (p *NatsPublisher) Publish(_ context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("nats: marshal event: %w", err)
	}
	msg := &nats.Msg{
		Subject: p.Subject(ev.Type),
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set("Event-Type", string(ev.Type))
	return p.nc.PublishMsg(msg)
}

func (p *NatsPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
