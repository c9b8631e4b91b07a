package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fentz26/missionctl/internal/audit"
	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/spf13/cobra"
)

var standupCmd = &cobra.Command{
	Use:   "standup",
	Short: "Show the mission and daily standup",
	RunE:  runStandup,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent decision records",
	RunE:  runAudit,
}

var auditLimit int

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "Number of records to show")
}

func runStandup(cmd *cobra.Command, args []string) error {
	var view controlplane.StandupView
	if err := apiGet("/api/standup", &view); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", bold("MISSION"), view.Mission)
	fmt.Printf("%s %d items\n", bold("DAILY STANDUP"), view.Total)
	printSection("Completed", view.Standup.Completed)
	printSection("In Progress", view.Standup.InProgress)
	printSection("Blocked", view.Standup.Blocked)
	printSection("Needs Review", view.Standup.NeedsReview)
	printSection("Key Decisions", view.Standup.KeyDecisions)
	return nil
}

func printSection(name string, items []models.StandupItem) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s\n", bold(name))
	for _, it := range items {
		fmt.Printf("  • %s %s\n", it.Title, gray("("+it.Agent+")"))
		if it.Detail != "" {
			fmt.Printf("    %s\n", gray(it.Detail))
		}
	}
}

func runAudit(cmd *cobra.Command, args []string) error {
	var entries []models.PDREntry
	if err := apiGet(fmt.Sprintf("/api/audit?limit=%d", auditLimit), &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No records")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tTARGET\tOUTCOME\tDETAILS")
	for _, e := range entries {
		outcome := e.Outcome
		switch e.Outcome {
		case audit.OutcomeSuccess:
			outcome = green(outcome)
		case audit.OutcomeError:
			outcome = red(outcome)
		default:
			outcome = gray(outcome)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Action, e.TargetID, outcome, truncate(e.Details, 50))
	}
	return w.Flush()
}
