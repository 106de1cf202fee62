package cmd

import (
	"fmt"
	"io"

	"github.com/f3rmion/closer/internal/config"
	"github.com/f3rmion/closer/internal/geo"
	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Show the built-in questions and map places",
	Long: `Print every question of the built-in deck with its answers, marking the
correct one, followed by the map places and where they land on the
0-100 plane the markers move on.`,
	Args: cobra.NoArgs,
	RunE: runDeck,
}

func init() {
	rootCmd.AddCommand(deckCmd)
}

func runDeck(cmd *cobra.Command, args []string) error {
	deck, err := config.DefaultDeck()
	if err != nil {
		return fmt.Errorf("loading deck: %w", err)
	}
	printDeck(cmd.OutOrStdout(), deck)
	return nil
}

func printDeck(w io.Writer, deck *config.Deck) {
	colorTitle.Fprintf(w, "Questions (%d)\n\n", len(deck.Questions))
	for i, q := range deck.Questions {
		colorInfo.Fprintf(w, "%d. %s\n", i+1, q.Text)
		for j, a := range q.Answers {
			if j == q.Correct {
				colorMarker.Fprintf(w, "   * %d) %s\n", j+1, a)
			} else {
				fmt.Fprintf(w, "     %d) %s\n", j+1, a)
			}
		}
		fmt.Fprintln(w)
	}

	places := deck.Places()
	colorTitle.Fprintln(w, "Places")
	for _, p := range []struct {
		name string
		c    geo.Coordinate
	}{
		{"connecticut", places.Connecticut},
		{"nepal", places.Nepal},
		{"alaska", places.Alaska},
		{"meet", places.Meet},
		{"no-path (me)", places.NoPathMe},
	} {
		pt := p.c.Plane()
		fmt.Fprintf(w, "  %-13s lat %9.4f  lon %9.4f  ", p.name, p.c.Lat, p.c.Lon)
		colorMuted.Fprintf(w, "-> x %5.1f%%  y %5.1f%%\n", pt.X, pt.Y)
	}
}
