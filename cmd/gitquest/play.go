package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/kurobon/gitquest/internal/config"
	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/puzzle"
)

var playCmd = &cobra.Command{
	Use:   "play <puzzle-id>",
	Short: "Play a stored puzzle interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := puzzle.NewStore(osfs.New(config.Global.DataRoot), "puzzles")
		p, err := store.Load(args[0])
		if err != nil {
			return err
		}
		state, err := p.NewGameState()
		if err != nil {
			return err
		}

		fmt.Printf("Puzzle %s (tier %s, par %d)\n", p.ID, p.Tier, p.ParScore)
		fmt.Printf("Collect every file and merge everything back to '%s'.\n", p.TrunkBranch)
		printTargets(state)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Printf("[%d/%d] > ", state.CommandsUsed, p.Constraints.MaxCommands)
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				return nil
			}

			command, err := engine.ParseLine(line)
			if err != nil {
				fmt.Println(err)
				continue
			}

			res := engine.Apply(state, command)
			fmt.Println(res.Message)
			for _, id := range res.FilesCollected {
				fmt.Printf("  collected %s\n", id)
			}
			if res.GameWon {
				fmt.Printf("You won in %d commands (par %d)!\n", state.CommandsUsed, p.ParScore)
				return nil
			}
		}
	},
}

func printTargets(state *engine.GameState) {
	for _, t := range state.Targets {
		fmt.Printf("  %s at (%s, depth %d)\n", t.Name, t.Branch, t.Depth)
	}
}
