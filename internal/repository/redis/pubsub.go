package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventsPubSub broadcasts that an experience's catalog entry or availability
// changed.
type EventsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewEventsPubSub(rdb *redis.Client) *EventsPubSub {
	return &EventsPubSub{
		rdb:     rdb,
		channel: ChannelExperiencesChanged(),
	}
}

type experienceChangedMsg struct {
	Type         string    `json:"type"`
	ExperienceID uuid.UUID `json:"experience_id"`
	TsUnix       int64     `json:"ts_unix"`
}

func (p *EventsPubSub) PublishExperienceChanged(ctx context.Context, id uuid.UUID) error {
	msg := experienceChangedMsg{
		Type:         "experience_changed",
		ExperienceID: id,
		TsUnix:       time.Now().Unix(),
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe calls handler for every change until ctx is done. ready, when not
// nil, is closed once the subscription is confirmed by the server.
func (p *EventsPubSub) Subscribe(
	ctx context.Context,
	ready chan<- struct{},
	handler func(ctx context.Context, id uuid.UUID),
) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev experienceChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.ExperienceID != uuid.Nil {
				handler(ctx, ev.ExperienceID)
			}
		}
	}
}
