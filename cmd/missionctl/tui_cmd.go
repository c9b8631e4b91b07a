package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/fentz26/missionctl/internal/session"
	"github.com/fentz26/missionctl/internal/tui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the Mission Control dashboard",
	RunE:  runTUI,
}

var (
	tuiSeedPath  string
	tuiNoDaemon  bool
	tuiStrict    bool
	tuiClientTag string
)

func init() {
	tuiCmd.Flags().StringVar(&tuiSeedPath, "seed", "", "Path to a YAML seed (default: embedded)")
	tuiCmd.Flags().BoolVar(&tuiNoDaemon, "no-daemon", false, "Do not start the daemon if it is not running")
	tuiCmd.Flags().BoolVar(&tuiStrict, "strict", false, "Refuse to start on seed integrity problems")
	tuiCmd.Flags().StringVar(&tuiClientTag, "client-name", "tui", "Name reported in daemon status checks")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !tuiNoDaemon && !isDaemonRunning(apiAddr) {
		fmt.Fprintln(os.Stderr, "starting missionctl daemon in the background")
		if err := startDaemon(); err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}
	}

	sd, err := loadSeed(tuiSeedPath, tuiStrict)
	if err != nil {
		return err
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	sess, err := session.Load(sessionPath)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable session file")
		sess = session.Default()
	}

	app := tui.New(tui.Options{
		APIAddr:     apiAddr,
		Seed:        sd,
		Session:     sess,
		SessionPath: sessionPath,
		ClientName:  tuiClientTag,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func isDaemonRunning(addr string) bool {
	client := http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Get(addr + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

const daemonStartTimeout = 5 * time.Second

func startDaemon() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "daemon", "--log-level", "warn")
	configureDaemonProc(cmd)

	// stdio stays detached so daemon logs never land on the dashboard

	if err := cmd.Start(); err != nil {
		return err
	}

	deadline := time.Now().Add(daemonStartTimeout)
	for time.Now().Before(deadline) {
		if isDaemonRunning(apiAddr) {
			log.WithField("pid", cmd.Process.Pid).Debug("daemon ready")
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("daemon started but API not reachable at %s", apiAddr)
}
