package sweepers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// QuoteLister enumerates quotes in the local store.
type QuoteLister interface {
	ListQuotes(ctx context.Context) ([]string, error)
}

// MirrorSyncer pushes one quote's local line items to the mirror.
type MirrorSyncer interface {
	SyncMirror(ctx context.Context, quoteID string) (int, error)
}

// MirrorSweeper periodically re-pushes line items whose best-effort mirror
// write was lost.
type MirrorSweeper struct {
	quotes   QuoteLister
	syncer   MirrorSyncer
	logger   *zerolog.Logger
	interval time.Duration
	stopChan chan struct{}
}

// NewMirrorSweeper creates a new sweeper for mirror resync
func NewMirrorSweeper(quotes QuoteLister, syncer MirrorSyncer, logger *zerolog.Logger, interval time.Duration) *MirrorSweeper {
	return &MirrorSweeper{
		quotes:   quotes,
		syncer:   syncer,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (s *MirrorSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("Starting mirror sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Mirror sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Mirror sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Mirror sweep failed")
			}
		}
	}
}

// Stop signals the sweeper to stop
func (s *MirrorSweeper) Stop() {
	close(s.stopChan)
}

// Sweep resyncs every local quote. A failing quote does not stop the sweep;
// the per-quote errors are joined. Returns the number of mirror writes made.
func (s *MirrorSweeper) Sweep(ctx context.Context) (int, error) {
	ids, err := s.quotes.ListQuotes(ctx)
	if err != nil {
		return 0, err
	}

	var (
		pushed int
		errs   []error
	)
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		n, err := s.syncer.SyncMirror(ctx, id)
		pushed += n
		if err != nil {
			s.logger.Warn().Err(err).Str("quote_id", id).Msg("Mirror resync failed")
			errs = append(errs, err)
		}
	}

	if pushed > 0 {
		s.logger.Info().
			Int("quotes", len(ids)).
			Int("pushed", pushed).
			Msg("Mirror sweep pushed line item changes")
	}
	return pushed, errors.Join(errs...)
}
