package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect and update the mission queue",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks by column",
	RunE:  runBoardList,
}

var boardMoveCmd = &cobra.Command{
	Use:   "move [task-id] [column]",
	Short: "Move a task to a column",
	Args:  cobra.ExactArgs(2),
	RunE:  runBoardMove,
}

func init() {
	boardCmd.AddCommand(boardListCmd, boardMoveCmd)
}

func runBoardList(cmd *cobra.Command, args []string) error {
	var view controlplane.BoardView
	if err := apiGet("/api/board", &view); err != nil {
		return err
	}

	fmt.Printf("%s  %d active of %d tasks (v%d)\n\n", bold("MISSION QUEUE"), view.ActiveCount, view.Total, view.Version)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, col := range view.Columns {
		fmt.Fprintf(w, "%s\t(%d)\t\t\n", bold(strings.ToUpper(col.Column.Name)), col.Count)
		for _, t := range col.Tasks {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", cyan(t.ID), truncate(t.Title, 40), formatPriority(t.Priority), t.AssigneeID)
		}
	}
	return w.Flush()
}

func runBoardMove(cmd *cobra.Command, args []string) error {
	var resp controlplane.MoveResponse
	req := controlplane.MoveRequest{TaskID: args[0], Column: args[1]}
	if err := apiPost("/api/board/move", req, &resp); err != nil {
		return err
	}

	if !resp.Moved {
		fmt.Printf("%s %s not moved (unknown task or column, or already there)\n", yellow("!"), args[0])
		return nil
	}
	fmt.Printf("%s Moved %s to %s (%d active)\n", green("✓"), args[0], args[1], resp.Board.ActiveCount)
	return nil
}
