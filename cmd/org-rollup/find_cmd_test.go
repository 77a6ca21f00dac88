package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	code, stdout, stderr := runCLI(t, "find", orgFixture, "root1.B.2")
	require.Equal(t, exitOK, code, stderr)

	var out findOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, "find", out.Command)
	require.NotEmpty(t, out.Matches)
	require.Equal(t, 32, out.Matches[0].ID)
	require.Equal(t, []int{1, 3, 32}, out.Matches[0].Path)
	require.True(t, out.Matches[0].Reachable)

	code, stdout, _ = runCLI(t, "find", "--limit", "1", orgFixture, "root")
	require.Equal(t, exitOK, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Matches, 1)
}

func TestFind_UsageErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "find", orgFixture, "  ")
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "query must not be empty")

	code, _, _ = runCLI(t, "find", "testdata/missing.txt", "root")
	require.Equal(t, exitUsage, code)
}
