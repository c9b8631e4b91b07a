package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage agents",
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	RunE:  runAgentList,
}

var agentShowCmd = &cobra.Command{
	Use:   "show [agent-id]",
	Short: "Show agent details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentShow,
}

var agentSetCmd = &cobra.Command{
	Use:   "set [agent-id]",
	Short: "Update agent details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentSet,
}

var (
	agentName         string
	agentRole         string
	agentProvider     string
	agentModel        string
	agentInstructions string
	agentStatus       string
)

func init() {
	agentCmd.AddCommand(agentListCmd, agentShowCmd, agentSetCmd)

	agentSetCmd.Flags().StringVar(&agentName, "name", "", "Display name")
	agentSetCmd.Flags().StringVar(&agentRole, "role", "", "Role")
	agentSetCmd.Flags().StringVar(&agentProvider, "provider", "", "LLM provider")
	agentSetCmd.Flags().StringVar(&agentModel, "model", "", "LLM model")
	agentSetCmd.Flags().StringVar(&agentInstructions, "instructions", "", "System instructions")
	agentSetCmd.Flags().StringVar(&agentStatus, "status", "", "Status (WORKING, IDLE)")
}

func runAgentList(cmd *cobra.Command, args []string) error {
	var dir controlplane.DirectoryView
	if err := apiGet("/api/directory", &dir); err != nil {
		return err
	}

	fmt.Printf("%s  %d of %d active\n\n", bold("AGENTS"), dir.ActiveCount, dir.Total)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROLE\tBADGE\tSTATUS")
	for _, a := range dir.Agents {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cyan(a.ID), a.Name, a.Role, a.Badge, formatStatus(a.Status))
	}
	return w.Flush()
}

func runAgentShow(cmd *cobra.Command, args []string) error {
	var a models.AgentDetail
	if err := apiGet("/api/agents/"+url.PathEscape(args[0]), &a); err != nil {
		return err
	}
	printAgent(a)
	return nil
}

func runAgentSet(cmd *cobra.Command, args []string) error {
	var u models.AgentUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		u.Name = &agentName
	}
	if flags.Changed("role") {
		u.Role = &agentRole
	}
	if flags.Changed("provider") {
		u.LLMProvider = &agentProvider
	}
	if flags.Changed("model") {
		u.LLMModel = &agentModel
	}
	if flags.Changed("instructions") {
		u.SystemInstructions = &agentInstructions
	}
	if flags.Changed("status") {
		st := models.AgentStatus(strings.ToUpper(agentStatus))
		u.Status = &st
	}
	if u.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --name, --role, --provider, --model, --instructions, --status")
	}

	var a models.AgentDetail
	if err := apiPut("/api/agents/"+url.PathEscape(args[0]), u, &a); err != nil {
		return err
	}
	fmt.Printf("%s Updated %s\n\n", green("✓"), a.ID)
	printAgent(a)
	return nil
}

func printAgent(a models.AgentDetail) {
	fmt.Printf("%s %s\n", bold(a.Name), gray("("+a.ID+")"))
	fmt.Printf("Role:     %s\n", a.Role)
	fmt.Printf("Badge:    %s\n", a.Badge)
	fmt.Printf("Status:   %s\n", formatStatus(a.Status))
	fmt.Printf("Model:    %s / %s\n", a.LLMProvider, a.LLMModel)
	if a.SystemInstructions != "" {
		fmt.Printf("\nInstructions:\n  %s\n", a.SystemInstructions)
	}
	if len(a.PromptTemplates) > 0 {
		fmt.Println("\nPrompt templates:")
		for _, p := range a.PromptTemplates {
			vars := ""
			if len(p.Variables) > 0 {
				vars = gray(" {" + strings.Join(p.Variables, ", ") + "}")
			}
			fmt.Printf("  - %s%s\n", p.Name, vars)
		}
	}
}
