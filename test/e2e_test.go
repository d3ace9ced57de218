package test

import (
	"context"
	"testing"

	"github.com/graeme-hill/lineq-go/lib"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	connStr := ConnectionString()
	if connStr == "" {
		t.Skipf("%s not set", DSNEnv)
	}

	ctx := context.Background()
	history, err := lib.OpenHistory(ctx, connStr)
	require.NoError(t, err)
	defer history.Close()

	migrations, err := lib.ReadMigrationsDir("../migrations")
	require.NoError(t, err)
	require.NoError(t, lib.RunMigrations(ctx, history.DB(), migrations))
	// Already applied migrations are skipped.
	require.NoError(t, lib.RunMigrations(ctx, history.DB(), migrations))

	in, err := lib.NewInterpreter()
	require.NoError(t, err)

	for _, equation := range []string{"2x+3=7", "x=x", "x=x+1", "x+"} {
		solution, interpErr := in.Interpret(equation)
		require.NoError(t, history.Record(ctx, equation, solution, interpErr))
	}

	entries, err := history.Recent(ctx, 4)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	require.Equal(t, "x+", entries[0].Equation)
	require.Equal(t, "error", entries[0].Outcome)
	require.NotEmpty(t, entries[0].Error)

	require.Equal(t, "none", entries[1].Outcome)
	require.Equal(t, "infinite", entries[2].Outcome)

	require.Equal(t, "2x+3=7", entries[3].Equation)
	require.Equal(t, "unique", entries[3].Outcome)
	require.Equal(t, "2", entries[3].Value)
}
