package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scalar/internal/config"
	"scalar/internal/daily"
	"scalar/internal/format"
	"scalar/internal/session"
	"scalar/internal/share"
)

func playCmd() *cobra.Command {
	var category string
	var freeplay bool
	var challenge string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(category, freeplay, challenge)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category to play")
	cmd.Flags().BoolVar(&freeplay, "freeplay", false, "Play a random target instead of the daily")
	cmd.Flags().StringVar(&challenge, "challenge", "", "Challenge token to play against")
	return cmd
}

func runPlay(categoryFlag string, freeplay bool, challenge string) error {
	ctx := context.Background()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	categoryName := a.category(categoryFlag)
	mode := modeFlagValue(!freeplay && challenge == "")

	var challengerMoves int
	if challenge != "" {
		decoded, err := share.DecodeChallenge(challenge, a.catalog)
		if err != nil {
			return err
		}
		categoryName = decoded.Category
		challengerMoves = decoded.ChallengerMoves
		if _, err := a.manager.StartChallenge(ctx, decoded.Category, decoded.Entity); err != nil {
			return err
		}
	}

	category, ok := a.catalog.Schema().CategoryByName(categoryName)
	if !ok {
		return fmt.Errorf("unknown category: %s", categoryName)
	}

	slot, err := a.manager.Slot(ctx, mode, categoryName)
	if err != nil {
		return err
	}

	unit := format.DistanceUnit(a.cfg.Game.DistanceUnit)
	out := os.Stdout

	if mode == session.ModeDaily {
		fmt.Fprintf(out, "Daily #%d %s %s - par %d\n",
			daily.PuzzleNumber(slot.DailyDate), category.Icon, category.Name, category.Par)
	} else {
		fmt.Fprintf(out, "Freeplay %s %s - par %d\n", category.Icon, category.Name, category.Par)
	}
	if challengerMoves > 0 {
		fmt.Fprintf(out, "Challenger solved it in %d moves. Beat that.\n", challengerMoves)
	}
	if len(slot.Guesses) > 0 {
		renderSlot(out, category, slot, unit)
	}
	fmt.Fprintln(out, `Type a name to guess, or "hint <field>", "reveal", "share", "quit".`)

	scanner := bufio.NewScanner(os.Stdin)
	for slot.Status == session.StatusPlaying {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "quit" || line == "exit":
			return nil

		case line == "reveal":
			slot, err = a.manager.RevealAnswer(ctx, mode, categoryName)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "The answer was %s.\n", slot.Target.Name)

		case strings.HasPrefix(line, "hint "):
			key := strings.TrimSpace(strings.TrimPrefix(line, "hint "))
			if _, found := category.FieldByKey(key); !found {
				fmt.Fprintf(out, "No field %q in this category.\n", key)
				continue
			}
			slot, err = a.manager.RevealHint(ctx, mode, categoryName, []string{key})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s (credits left: %d)\n", key, slot.Target.Text(key), slot.Credits)

		case line == "share":
			fmt.Fprintln(out, "Finish the game first.")

		default:
			updated, result, err := a.manager.SubmitGuess(ctx, mode, categoryName, line)
			if err != nil {
				if alternatives := suggestAlternatives(a, categoryName, line); alternatives != "" {
					fmt.Fprintf(out, "Unknown entity %q. Did you mean: %s?\n", line, alternatives)
				} else {
					fmt.Fprintf(out, "Unknown entity %q.\n", line)
				}
				continue
			}
			slot = updated
			renderGuess(out, category, *result, unit)
			fmt.Fprintf(out, "Moves: %d\n", slot.Moves)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	renderRank(out, slot, category.Par)
	if slot.Status != session.StatusPlaying {
		fmt.Fprintln(out, shareText(a, category, slot))
	}
	return nil
}

func suggestAlternatives(a *app, category, query string) string {
	matches := a.catalog.Suggestions(category, query, nil)
	if len(matches) == 0 {
		return ""
	}
	names := make([]string, 0, len(matches))
	for _, entity := range matches {
		names = append(names, entity.Name)
	}
	return joinNames(names)
}

func shareText(a *app, category *config.Category, slot *session.Slot) string {
	return share.Text(share.Options{
		Daily:    slot.Mode == session.ModeDaily,
		Date:     slot.DailyDate,
		Category: category.Name,
		Icon:     category.Icon,
		Moves:    slot.Moves,
		EntityID: slot.Target.ID,
		BaseURL:  a.cfg.Server.BaseURL,
	}, guessFeedback(slot), category.Fields)
}
