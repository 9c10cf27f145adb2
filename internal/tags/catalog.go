package tags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

const catalogKeyPrefix = "collab:catalog:" // collab:catalog:{skill|category}[:gen]

// errStaleFill reports a fill that lost to an invalidation made while the
// list was loading.
var errStaleFill = errors.New("catalog changed while loading")

// Catalog serves the list of known tag names, cached in Redis. A nil
// client disables caching and every read goes to the store.
//
// Invalidate bumps a per-kind generation counter; a fill only writes when
// the counter still holds the value read before loading.
type Catalog struct {
	client *redis.Client
	store  Store
	ttl    time.Duration
}

func NewCatalog(client *redis.Client, store Store, ttl time.Duration) *Catalog {
	return &Catalog{client: client, store: store, ttl: ttl}
}

// Names returns every tag name of kind, sorted by name.
func (c *Catalog) Names(ctx context.Context, kind domain.TagKind) ([]string, error) {
	if c.client != nil {
		data, err := c.client.Get(ctx, c.key(kind)).Bytes()
		if err == nil {
			var names []string
			if err := json.Unmarshal(data, &names); err == nil {
				return names, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			observability.NewLogger(ctx).LogWarnf("catalog.get", "kind=%s error=%v", kind, err)
		}
	}

	names, err := c.fill(ctx, kind)
	if err != nil && names == nil {
		return nil, err
	}
	if err != nil && !errors.Is(err, errStaleFill) {
		observability.NewLogger(ctx).LogWarnf("catalog.put", "kind=%s error=%v", kind, err)
	}
	return names, nil
}

// Refresh reloads kind from the store into the cache and returns how many
// names it holds.
func (c *Catalog) Refresh(ctx context.Context, kind domain.TagKind) (int, error) {
	names, err := c.fill(ctx, kind)
	if names == nil {
		return 0, err
	}
	if err != nil && !errors.Is(err, errStaleFill) {
		return len(names), err
	}
	return len(names), nil
}

// Invalidate drops the cached list so the next read reloads it.
func (c *Catalog) Invalidate(ctx context.Context, kind domain.TagKind) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(kind))
		pipe.Del(ctx, c.key(kind))
		return nil
	})
	return err
}

// fill loads kind from the store and caches it. A non-nil names with a
// non-nil error means the load worked but the cache write did not.
func (c *Catalog) fill(ctx context.Context, kind domain.TagKind) ([]string, error) {
	if c.client == nil {
		return c.load(ctx, kind)
	}

	gen, err := c.generation(ctx, c.client, kind)
	if err != nil {
		names, loadErr := c.load(ctx, kind)
		if loadErr != nil {
			return nil, loadErr
		}
		return names, err
	}

	names, err := c.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return names, c.put(ctx, kind, gen, names)
}

func (c *Catalog) load(ctx context.Context, kind domain.TagKind) ([]string, error) {
	tags, err := c.store.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s tags: %w", kind, err)
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

func (c *Catalog) generation(ctx context.Context, cmd redis.Cmdable, kind domain.TagKind) (int64, error) {
	gen, err := cmd.Get(ctx, c.genKey(kind)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("read %s catalog generation: %w", kind, err)
	}
	return gen, nil
}

func (c *Catalog) put(ctx context.Context, kind domain.TagKind, gen int64, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.generation(ctx, tx, kind)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(kind), data, c.ttl)
			return nil
		})
		return err
	}, c.genKey(kind))
	if errors.Is(err, redis.TxFailedErr) {
		return errStaleFill
	}
	return err
}

func (c *Catalog) key(kind domain.TagKind) string {
	return fmt.Sprintf("%s%s", catalogKeyPrefix, kind)
}

func (c *Catalog) genKey(kind domain.TagKind) string {
	return c.key(kind) + ":gen"
}
