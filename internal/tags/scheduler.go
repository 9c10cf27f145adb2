package tags

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

// Scheduler keeps the catalog cache warm.
type Scheduler struct {
	catalog *Catalog
	spec    string
	cron    *cron.Cron
}

func NewScheduler(catalog *Catalog, spec string) *Scheduler {
	return &Scheduler{catalog: catalog, spec: spec}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RefreshAll(ctx)
	}); err != nil {
		return err
	}

	s.cron = c
	c.Start()
	log.Printf("Catalog refresher started (spec %q)", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RefreshAll reloads both catalogs, logging failures.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	logger := observability.NewLogger(ctx)
	for _, kind := range []domain.TagKind{domain.SkillTag, domain.CategoryTag} {
		n, err := s.catalog.Refresh(ctx, kind)
		if err != nil {
			logger.LogErrorf("catalog.refresh", "kind=%s error=%v", kind, err)
			continue
		}
		logger.LogInfof("catalog.refresh", "kind=%s names=%d", kind, n)
	}
}
