package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"merge","name":"feature"}`))
	require.NoError(t, err)
	assert.Equal(t, CmdMerge, cmd.Type)
	assert.Equal(t, "feature", cmd.Name)

	_, err = DecodeCommand([]byte(`{"type":"teleport"}`))
	assert.Error(t, err, "unknown tag is rejected at the boundary")

	_, err = DecodeCommand([]byte(`{"type":"checkout"}`))
	assert.Error(t, err, "missing required field is rejected at the boundary")

	_, err = DecodeCommand([]byte(`{nope`))
	assert.Error(t, err)
}

func TestParseLine(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"commit -m fix the bug", Command{Type: CmdCommit, Message: "fix the bug"}},
		{`git commit -m "quoted msg"`, Command{Type: CmdCommit, Message: "quoted msg"}},
		{"commit", Command{Type: CmdCommit}},
		{"branch feature", Command{Type: CmdBranch, Name: "feature"}},
		{"checkout main", Command{Type: CmdCheckout, Target: "main"}},
		{"git switch main", Command{Type: CmdCheckout, Target: "main"}},
		{"merge feature", Command{Type: CmdMerge, Name: "feature"}},
		{"rebase main", Command{Type: CmdRebase, Name: "main"}},
		{"undo", Command{Type: CmdUndo}},
	}
	for _, tc := range cases {
		got, err := ParseLine(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLine("")
	assert.Error(t, err)
	_, err = ParseLine("frobnicate now")
	assert.Error(t, err)
	_, err = ParseLine("merge a b")
	assert.Error(t, err)
}
