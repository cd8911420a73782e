// Package engine implements the puzzle command executor: a synchronous state
// machine that applies one player command at a time to a GameState. Every
// entry point is a pure function over the state; failures are returned as
// values and never leave the state partially mutated.
package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CommandType tags the command union.
type CommandType string

const (
	CmdCommit   CommandType = "commit"
	CmdBranch   CommandType = "branch"
	CmdCheckout CommandType = "checkout"
	CmdMerge    CommandType = "merge"
	CmdRebase   CommandType = "rebase"
	CmdUndo     CommandType = "undo"
)

// Command is the typed union that reaches the executor. Wire payloads and
// REPL lines are decoded into it before any state is touched.
type Command struct {
	Type    CommandType `json:"type"`
	Message string      `json:"message,omitempty"` // commit
	Name    string      `json:"name,omitempty"`    // branch / merge / rebase
	Target  string      `json:"target,omitempty"`  // checkout
}

// Mutating reports whether a successful command of this type changes state
// and therefore gets an undo snapshot.
func (c Command) Mutating() bool { return c.Type != CmdUndo }

func (c Command) String() string {
	switch c.Type {
	case CmdCommit:
		return fmt.Sprintf("commit %q", c.Message)
	case CmdBranch:
		return "branch " + c.Name
	case CmdCheckout:
		return "checkout " + c.Target
	case CmdMerge:
		return "merge " + c.Name
	case CmdRebase:
		return "rebase " + c.Name
	default:
		return string(c.Type)
	}
}

// DecodeCommand converts a JSON wire payload into a validated Command.
func DecodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("malformed command payload: %w", err)
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Validate checks the tag and the type-specific required fields.
func (c Command) Validate() error {
	switch c.Type {
	case CmdCommit, CmdUndo:
		return nil
	case CmdBranch, CmdMerge, CmdRebase:
		if c.Name == "" {
			return fmt.Errorf("%s requires a branch name", c.Type)
		}
		return nil
	case CmdCheckout:
		if c.Target == "" {
			return fmt.Errorf("checkout requires a target")
		}
		return nil
	default:
		return fmt.Errorf("unknown command type %q", c.Type)
	}
}

// ParseLine turns an interactive input line into a Command. It accepts the
// bare verbs and the git-prefixed forms ("git commit -m msg", "merge x").
func ParseLine(input string) (Command, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	if parts[0] == "git" {
		parts = parts[1:]
		if len(parts) == 0 {
			return Command{}, fmt.Errorf("empty command")
		}
	}

	verb, args := parts[0], parts[1:]
	switch verb {
	case "commit":
		msg := ""
		for i := 0; i < len(args); i++ {
			if args[i] == "-m" && i+1 < len(args) {
				msg = strings.Trim(strings.Join(args[i+1:], " "), "\"'")
				break
			}
		}
		if msg == "" && len(args) > 0 && args[0] != "-m" {
			msg = strings.Join(args, " ")
		}
		return Command{Type: CmdCommit, Message: msg}, nil
	case "branch":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: branch <name>")
		}
		return Command{Type: CmdBranch, Name: args[0]}, nil
	case "checkout", "switch":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: checkout <branch|commit>")
		}
		return Command{Type: CmdCheckout, Target: args[0]}, nil
	case "merge":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: merge <branch>")
		}
		return Command{Type: CmdMerge, Name: args[0]}, nil
	case "rebase":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: rebase <branch>")
		}
		return Command{Type: CmdRebase, Name: args[0]}, nil
	case "undo":
		return Command{Type: CmdUndo}, nil
	default:
		return Command{}, fmt.Errorf("'%s' is not a recognized command. See 'help'", verb)
	}
}
