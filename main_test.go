package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteExitCodes(t *testing.T) {
	require.Equal(t, 0, execute([]string{"--help"}))
	require.Equal(t, 1, execute([]string{"--fetcher", "carrier-pigeon"}))
	require.Equal(t, 1, execute([]string{"--no-such-flag"}))
}
