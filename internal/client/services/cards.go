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

// CardService owns the user's own cards and, while one card's responses are
// open, the list of responses to it. Accepting or ignoring a response is
// terminal: the response leaves the visible set once the server confirms.
type CardService struct {
	client api.Client
	log    logging.Logger
	cards  syncedList[models.MyCard]

	responses syncedList[models.CardResponse]
}

func NewCardService(client api.Client, log logging.Logger) *CardService {
	return &CardService{client: client, log: log.With("component", "cards")}
}

// Refresh replaces the list of the user's own cards.
func (s *CardService) Refresh(ctx context.Context) error {
	seq := s.cards.begin()
	cards, err := s.client.MyCards(ctx)
	if err != nil {
		return fmt.Errorf("my cards fetch error: %w", err)
	}
	if !s.cards.apply(seq, cards) {
		s.log.Debug(ctx, "stale card snapshot discarded", "seq", seq)
	}
	return nil
}

func (s *CardService) Cards() []models.MyCard {
	return s.cards.snapshot()
}

// Create posts a new anonymous card. Content is validated client-side
// (non-empty, at most models.MaxCardContentLen characters); the server
// remains authoritative. The created card is appended locally on success.
func (s *CardService) Create(ctx context.Context, content string) (models.MyCard, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.MyCard{}, fmt.Errorf("%w: card content is required", common.ErrEmptyField)
	}
	if utf8.RuneCountInString(content) > models.MaxCardContentLen {
		return models.MyCard{}, fmt.Errorf("%w: a card is limited to %d characters", common.ErrContentTooLong, models.MaxCardContentLen)
	}

	card, err := s.client.CreateCard(ctx, content)
	if err != nil {
		return models.MyCard{}, fmt.Errorf("card creation error: %w", err)
	}

	s.cards.mutate(func(items []models.MyCard) []models.MyCard {
		return append(items, card)
	})
	return card, nil
}

// OpenResponses fetches the responses to one of the user's cards, replacing
// the previously open response list.
func (s *CardService) OpenResponses(ctx context.Context, cardID int) ([]models.CardResponse, error) {
	seq := s.responses.begin()
	responses, err := s.client.CardResponses(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("responses fetch error: %w", err)
	}

	s.responses.apply(seq, responses)
	return s.responses.snapshot(), nil
}

func (s *CardService) Responses() []models.CardResponse {
	return s.responses.snapshot()
}

func (s *CardService) removeResponse(responseID int) {
	s.responses.mutate(func(items []models.CardResponse) []models.CardResponse {
		return removeWhere(items, func(r models.CardResponse) bool { return r.ID == responseID })
	})
}

// Accept accepts a response, which creates a match and its chat room. The
// response leaves the local list once the server confirms.
func (s *CardService) Accept(ctx context.Context, responseID int) (models.AcceptResult, error) {
	result, err := s.client.AcceptResponse(ctx, responseID)
	if err != nil {
		return models.AcceptResult{}, fmt.Errorf("accept error: %w", err)
	}
	s.removeResponse(responseID)
	return result, nil
}

// Ignore dismisses a response permanently.
func (s *CardService) Ignore(ctx context.Context, responseID int) error {
	if err := s.client.IgnoreResponse(ctx, responseID); err != nil {
		return fmt.Errorf("ignore error: %w", err)
	}
	s.removeResponse(responseID)
	return nil
}

// Reset drops all local card state, e.g. on logout.
func (s *CardService) Reset() {
	s.cards.reset()
	s.responses.reset()
}
