package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon health and client heartbeats",
	RunE:  runStatus,
}

var statusAddCmd = &cobra.Command{
	Use:   "add [client-name]",
	Short: "Record a status check",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusAdd,
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded status checks",
	RunE:  runStatusList,
}

func init() {
	statusCmd.AddCommand(statusAddCmd, statusListCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	health, err := CheckHealth()
	if health != nil {
		db := green(health.DB)
		if !health.OK {
			db = red(health.DB)
		}
		fmt.Printf("Daemon:  %s\nVersion: %s\nDB:      %s\nTime:    %s\n", apiAddr, health.Version, db, health.Time)
	}
	return err
}

func runStatusAdd(cmd *cobra.Command, args []string) error {
	var check models.StatusCheck
	if err := apiPost("/api/status", controlplane.StatusRequest{ClientName: args[0]}, &check); err != nil {
		return err
	}
	fmt.Printf("%s Recorded %s at %s\n", green("✓"), check.ID, check.Timestamp.Local().Format(time.RFC3339))
	return nil
}

func runStatusList(cmd *cobra.Command, args []string) error {
	var checks []models.StatusCheck
	if err := apiGet("/api/status", &checks); err != nil {
		return err
	}
	if len(checks) == 0 {
		fmt.Println("No status checks recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tTIME")
	for _, c := range checks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", gray(shortID(c.ID)), c.ClientName, c.Timestamp.Local().Format(time.RFC3339))
	}
	return w.Flush()
}
