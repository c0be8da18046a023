package services

import (
	"context"
	"fmt"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/logging"
)

// MatchService owns the list of the user's matches. The client only observes
// matches; creating one is always a server-side consequence of crossed
// like/response actions.
type MatchService struct {
	client api.Client
	log    logging.Logger
	list   syncedList[models.Match]
}

func NewMatchService(client api.Client, log logging.Logger) *MatchService {
	return &MatchService{client: client, log: log.With("component", "matches")}
}

// Refresh replaces the match list with the server's current view.
func (s *MatchService) Refresh(ctx context.Context) error {
	seq := s.list.begin()
	matches, err := s.client.Matches(ctx)
	if err != nil {
		return fmt.Errorf("matches fetch error: %w", err)
	}
	if !s.list.apply(seq, matches) {
		s.log.Debug(ctx, "stale match snapshot discarded", "seq", seq)
	}
	return nil
}

func (s *MatchService) Matches() []models.Match {
	return s.list.snapshot()
}

// Reset drops the local list, e.g. on logout.
func (s *MatchService) Reset() {
	s.list.reset()
}
