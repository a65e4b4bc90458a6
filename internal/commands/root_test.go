package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmbp/sitedeck/internal/filter"
)

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found in rootCmd", name)
	return nil
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{
		"dashboard", "ls", "gantt", "summary", "add", "set",
		"column", "row", "upload", "gallery", "help", "version",
	} {
		findCommand(t, name)
	}
}

func TestFilterFlagsRegistered(t *testing.T) {
	for _, name := range []string{"ls", "gantt", "summary"} {
		cmd := findCommand(t, name)
		for _, flag := range []string{
			"activity", "item", "task", "room", "status", "order-status",
			"from", "to", "hide-finished",
		} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%s should have --%s", name, flag)
		}
	}
}

func TestGanttGroupingFlags(t *testing.T) {
	cmd := findCommand(t, "gantt")
	for _, flag := range []string{"by-room", "by-item", "by-task"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag))
	}
}

func TestColumnSubcommands(t *testing.T) {
	column := findCommand(t, "column")
	names := make([]string, 0, 2)
	for _, sub := range column.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"add", "rm"}, names)

	row := findCommand(t, "row")
	require.Len(t, row.Commands(), 1)
	assert.Equal(t, "rm", row.Commands()[0].Name())
}

func TestSelectionFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	require.NoError(t, cmd.Flags().Set("activity", "Construction"))
	require.NoError(t, cmd.Flags().Set("status", "In Progress,Finished"))
	require.NoError(t, cmd.Flags().Set("from", "2025-03-01"))
	require.NoError(t, cmd.Flags().Set("hide-finished", "true"))

	sel, err := selectionFromFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"Construction"}, sel.Activities)
	assert.Equal(t, []string{"In Progress", "Finished"}, sel.Statuses)
	assert.False(t, sel.ShowFinished)
	require.NotNil(t, sel.From)
	assert.Equal(t, "2025-03-01", sel.From.Format("2006-01-02"))
	assert.Nil(t, sel.To)
	assert.Empty(t, sel.Rooms)
}

func TestSelectionFromFlagsBadDate(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	require.NoError(t, cmd.Flags().Set("to", "soon"))

	_, err := selectionFromFlags(cmd)
	assert.ErrorContains(t, err, "invalid --to date")
}

func TestSelectionFromFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)

	sel, err := selectionFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, filter.NewSelection(), sel)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "exactly-10", clip("exactly-10", 10))
	assert.Equal(t, "a long ...", clip("a long value here", 10))
	assert.Equal(t, "ab", clip("abcdef", 2))
}
