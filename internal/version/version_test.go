package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringFormat(t *testing.T) {
	i := Info{Version: "1.2.3", CommitHash: "abcdef", BuildDate: "2024-01-01"}
	require.Equal(t, "recli 1.2.3 (commit abcdef, built 2024-01-01)", i.String())
}

func TestGetFallsBackWhenLdflagsUnset(t *testing.T) {
	info := Get()
	require.NotEmpty(t, info.Version)
}
