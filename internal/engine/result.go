package engine

import "github.com/kurobon/gitquest/internal/graph"

// CommandResult is what every executor call returns, success or not.
type CommandResult struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	ErrorKind      ErrorKind         `json:"errorKind,omitempty"`
	FilesCollected []string          `json:"filesCollected,omitempty"`
	GameWon        bool              `json:"gameWon,omitempty"`
	NewGraph       *graph.Serialized `json:"newGraphSnapshot,omitempty"`
}

func success(msg string) CommandResult {
	return CommandResult{Success: true, Message: msg}
}
