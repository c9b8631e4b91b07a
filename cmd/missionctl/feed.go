package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/feed"
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the live activity feed",
	RunE:  runFeed,
}

var feedSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-agent workload and last activity",
	RunE:  runFeedSummary,
}

var feedTab string

func init() {
	feedCmd.AddCommand(feedSummaryCmd)
	feedCmd.Flags().StringVar(&feedTab, "tab", "", "Tab to show (All, Tasks, Comments, Decisions, Docs, Status)")
}

func runFeed(cmd *cobra.Command, args []string) error {
	path := "/api/feed"
	if feedTab != "" {
		path += "?tab=" + url.QueryEscape(feedTab)
	}

	var view controlplane.FeedView
	if err := apiGet(path, &view); err != nil {
		return err
	}

	var tabs []string
	for _, tc := range view.Tabs {
		label := fmt.Sprintf("%s(%d)", tc.Name, tc.Count)
		if tc.Name == view.ActiveTab {
			label = bold("[" + label + "]")
		}
		tabs = append(tabs, label)
	}
	fmt.Println(strings.Join(tabs, " "))
	fmt.Println()

	if view.Empty {
		fmt.Println("No activity yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range view.Events {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", gray(e.Timestamp), e.AgentID, e.Action, cyan(e.Target), truncate(e.Detail, 50))
	}
	return w.Flush()
}

func runFeedSummary(cmd *cobra.Command, args []string) error {
	var summary []feed.AgentActivity
	if err := apiGet("/api/feed/summary", &summary); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tACTIVE TASKS\tLAST ACTIVITY")
	for _, s := range summary {
		last := s.LastActivity
		if !s.HasActivity {
			last = gray(last)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.ActiveTasks, last)
	}
	return w.Flush()
}
