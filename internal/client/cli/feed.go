package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// promptID reads a numeric identifier interactively.
func (a *App) promptID(prompt string) (int, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	return id, nil
}

// Feed fetches and prints the current batch of other users' cards.
func (a *App) Feed(ctx context.Context) error {
	if err := a.feed.Refresh(ctx); err != nil {
		return a.fail(ctx, err)
	}

	cards := a.feed.Cards()
	if len(cards) == 0 {
		printlnFn("No cards right now, check back later.")
		return nil
	}

	for _, card := range cards {
		printlnFn(fmt.Sprintf("[%d] %s", card.CardID, card.Content))
		printlnFn(fmt.Sprintf("    by %s, %s", card.CreatedBy, card.Timestamp.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

// Like likes a card from the feed and reports whether it created a match.
func (a *App) Like(ctx context.Context) error {
	id, err := a.promptID("Card id to like")
	if err != nil {
		return a.fail(ctx, err)
	}

	result, err := a.feed.Like(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}

	if result.Matched {
		printlnFn("It's a match! Check 'matches' to start chatting.")
	} else {
		printlnFn("Liked.")
	}
	return nil
}

// Reject dismisses a card from the feed.
func (a *App) Reject(ctx context.Context) error {
	id, err := a.promptID("Card id to reject")
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.feed.Reject(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Rejected.")
	return nil
}

// Respond sends a text reply to a card from the feed.
func (a *App) Respond(ctx context.Context) error {
	id, err := a.promptID("Card id to respond to")
	if err != nil {
		return a.fail(ctx, err)
	}

	text, err := getSimpleText(a.reader, "Your response", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.feed.Respond(ctx, id, text); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Response sent.")
	return nil
}
