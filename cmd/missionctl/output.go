package main

import (
	"github.com/fatih/color"
	"github.com/fentz26/missionctl/internal/models"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func formatStatus(s models.AgentStatus) string {
	if s == models.AgentStatusWorking {
		return green(string(s))
	}
	return gray(string(s))
}

func formatPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return red(string(p))
	case models.PriorityMedium:
		return yellow(string(p))
	default:
		return gray(string(p))
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
