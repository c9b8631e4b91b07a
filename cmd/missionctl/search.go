package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search agents, tasks and activity",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")

	var resp controlplane.SearchResponse
	if err := apiGet("/api/search?q="+url.QueryEscape(q), &resp); err != nil {
		return err
	}

	if resp.NoQuery {
		fmt.Println("Type something to search")
		return nil
	}
	if resp.Total == 0 {
		fmt.Printf("No results for %q\n", q)
		return nil
	}

	if len(resp.Agents) > 0 {
		fmt.Println(bold("AGENTS"))
		for _, a := range resp.Agents {
			fmt.Printf("  %s  %s · %s\n", cyan(a.ID), a.Name, a.Role)
		}
	}
	if len(resp.Tasks) > 0 {
		fmt.Println(bold("TASKS"))
		for _, t := range resp.Tasks {
			fmt.Printf("  %s  %s [%s]\n", cyan(t.ID), truncate(t.Title, 50), t.Column)
		}
	}
	if len(resp.Events) > 0 {
		fmt.Println(bold("ACTIVITY"))
		for _, e := range resp.Events {
			fmt.Printf("  %s  %s %s %s\n", gray(e.Timestamp), e.AgentID, e.Action, e.Target)
		}
	}
	return nil
}
