package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"textmatch/internal/client/api"
	"textmatch/internal/client/models"
	"textmatch/internal/common"
	"textmatch/internal/logging"
)

// FeedService owns the feed of other users' cards. Reactions (like, reject,
// respond) remove the card from the local list only after the server has
// acknowledged the action; on failure the list is left unchanged.
type FeedService struct {
	client api.Client
	log    logging.Logger
	list   syncedList[models.TextCard]
}

func NewFeedService(client api.Client, log logging.Logger) *FeedService {
	return &FeedService{client: client, log: log.With("component", "feed")}
}

// Refresh replaces the whole feed with the server's current batch.
func (s *FeedService) Refresh(ctx context.Context) error {
	seq := s.list.begin()
	cards, err := s.client.Feed(ctx)
	if err != nil {
		return fmt.Errorf("feed fetch error: %w", err)
	}
	if !s.list.apply(seq, cards) {
		s.log.Debug(ctx, "stale feed snapshot discarded", "seq", seq)
	}
	return nil
}

func (s *FeedService) Cards() []models.TextCard {
	return s.list.snapshot()
}

func (s *FeedService) removeCard(cardID int) {
	s.list.mutate(func(items []models.TextCard) []models.TextCard {
		return removeWhere(items, func(c models.TextCard) bool { return c.CardID == cardID })
	})
}

// Like reacts positively to a card. The card leaves the local feed and the
// result tells the caller whether a match was created and which chat room it
// opened.
func (s *FeedService) Like(ctx context.Context, cardID int) (models.LikeResult, error) {
	result, err := s.client.LikeCard(ctx, cardID)
	if err != nil {
		return models.LikeResult{}, fmt.Errorf("like error: %w", err)
	}
	s.removeCard(cardID)
	return result, nil
}

// Reject dismisses a card; the user will not see it again.
func (s *FeedService) Reject(ctx context.Context, cardID int) error {
	if err := s.client.RejectCard(ctx, cardID); err != nil {
		return fmt.Errorf("reject error: %w", err)
	}
	s.removeCard(cardID)
	return nil
}

// Respond sends a text reply to a card and removes it from the feed.
func (s *FeedService) Respond(ctx context.Context, cardID int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: response text is required", common.ErrEmptyField)
	}
	if utf8.RuneCountInString(text) > models.MaxResponseTextLen {
		return fmt.Errorf("%w: response is limited to %d characters", common.ErrContentTooLong, models.MaxResponseTextLen)
	}

	if err := s.client.RespondToCard(ctx, cardID, text); err != nil {
		return fmt.Errorf("respond error: %w", err)
	}
	s.removeCard(cardID)
	return nil
}

// Reset drops the local feed, e.g. on logout.
func (s *FeedService) Reset() {
	s.list.reset()
}
