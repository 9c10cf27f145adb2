package swipes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	profileChannelPrefix = "collab:matches:profile:" // collab:matches:profile:{profile_id}
	projectChannelPrefix = "collab:matches:project:" // collab:matches:project:{project_id}
)

const (
	EventMatchFormed  = "match_formed"
	EventMatchRevoked = "match_revoked"
)

type MatchEvent struct {
	Type      string    `json:"type"`
	ProfileID int64     `json:"profile_id"`
	ProjectID int64     `json:"project_id"`
	By        string    `json:"by"`
	At        time.Time `json:"at"`
}

func ProfileChannel(profileID int64) string {
	return profileChannelPrefix + strconv.FormatInt(profileID, 10)
}

func ProjectChannel(projectID int64) string {
	return projectChannelPrefix + strconv.FormatInt(projectID, 10)
}

// RedisPublisher fans match events out on the profile and project channels.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev MatchEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal match event: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, ProfileChannel(ev.ProfileID), data)
	pipe.Publish(ctx, ProjectChannel(ev.ProjectID), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish match event: %w", err)
	}
	return nil
}

// Subscribe listens for match events on the given channels.
func (p *RedisPublisher) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return p.client.Subscribe(ctx, channels...)
}
