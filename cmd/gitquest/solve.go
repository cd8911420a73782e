package main

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/kurobon/gitquest/internal/config"
	"github.com/kurobon/gitquest/internal/puzzle"
	"github.com/kurobon/gitquest/internal/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle-id>",
	Short: "Re-solve a stored puzzle and print the optimal sequence",
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

		sol, ok := solver.Solve(state)
		if !ok {
			return fmt.Errorf("puzzle %s is unsolvable within its command limit", p.ID)
		}

		fmt.Printf("puzzle %s: par %d (stored par %d)\n", p.ID, sol.Par, p.ParScore)
		for i, c := range sol.Commands {
			fmt.Printf("%2d. %s\n", i+1, c)
		}
		return nil
	},
}
