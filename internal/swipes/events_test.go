package swipes

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func receive(t *testing.T, ch <-chan *redis.Message) MatchEvent {
	t.Helper()
	select {
	case msg := <-ch:
		var ev MatchEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no match event received")
		return MatchEvent{}
	}
}

func TestRedisPublisher_MatchEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := NewRedisPublisher(setupTestRedis(t))
	f.ledger.SetPublisher(pub)

	profileSub := pub.Subscribe(ctx, ProfileChannel(f.person))
	defer profileSub.Close()
	projectSub := pub.Subscribe(ctx, ProjectChannel(f.project))
	defer projectSub.Close()
	_, err := profileSub.Receive(ctx)
	require.NoError(t, err)
	_, err = projectSub.Receive(ctx)
	require.NoError(t, err)

	_, err = f.ledger.RecordPersonDecision(ctx, f.person, f.project, domain.Like)
	require.NoError(t, err)
	_, err = f.ledger.RecordProjectDecision(ctx, f.person, f.project, domain.Like)
	require.NoError(t, err)
	_, err = f.ledger.RecordProjectDecision(ctx, f.person, f.project, domain.Pass)
	require.NoError(t, err)

	profileCh := profileSub.Channel()
	projectCh := projectSub.Channel()

	formed := receive(t, profileCh)
	assert.Equal(t, EventMatchFormed, formed.Type)
	assert.Equal(t, f.project, formed.ProjectID)
	assert.Equal(t, EventMatchFormed, receive(t, projectCh).Type)

	revoked := receive(t, profileCh)
	assert.Equal(t, EventMatchRevoked, revoked.Type)
	assert.Equal(t, "project", revoked.By)
	assert.Equal(t, EventMatchRevoked, receive(t, projectCh).Type)
}

func TestChannels(t *testing.T) {
	assert.Equal(t, "collab:matches:profile:7", ProfileChannel(7))
	assert.Equal(t, "collab:matches:project:12", ProjectChannel(12))
}
