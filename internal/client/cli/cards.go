package cli

import (
	"context"
	"fmt"
	"os"
)

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

// AddCard publishes a new anonymous card.
func (a *App) AddCard(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Card text", os.Stdout)
	if err != nil {
		return err
	}

	card, err := a.cards.Create(ctx, content)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Card %d published.", card.ID))
	return nil
}

// MyCards lists the user's own cards with their like and response counts.
func (a *App) MyCards(ctx context.Context) error {
	if err := a.cards.Refresh(ctx); err != nil {
		return a.fail(ctx, err)
	}

	cards := a.cards.Cards()
	if len(cards) == 0 {
		printlnFn("You have no cards yet. Use 'addcard' to publish one.")
		return nil
	}

	for _, card := range cards {
		printlnFn(fmt.Sprintf("[%d] %s", card.ID, card.Content))
		printlnFn(fmt.Sprintf("    likes: %s, responses: %s", formatCount(card.LikesCount), formatCount(card.ResponsesCount)))
	}
	return nil
}

// Responses lists the responses to one of the user's cards.
func (a *App) Responses(ctx context.Context) error {
	id, err := a.promptID("Card id")
	if err != nil {
		return a.fail(ctx, err)
	}

	responses, err := a.cards.OpenResponses(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(responses) == 0 {
		printlnFn("No responses to this card yet.")
		return nil
	}

	for _, r := range responses {
		printlnFn(fmt.Sprintf("[%d] %s: %s", r.ID, r.ResponderUsername, r.ResponseText))
	}
	return nil
}

// Accept accepts a response, creating a match and its chat room.
func (a *App) Accept(ctx context.Context) error {
	id, err := a.promptID("Response id to accept")
	if err != nil {
		return a.fail(ctx, err)
	}

	result, err := a.cards.Accept(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Matched with %s! Use 'chat' to start talking.", result.Username))
	return nil
}

// Ignore dismisses a response permanently.
func (a *App) Ignore(ctx context.Context) error {
	id, err := a.promptID("Response id to ignore")
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.cards.Ignore(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Ignored.")
	return nil
}
