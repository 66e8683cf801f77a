package main

import (
	"fmt"
	"os"

	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ScottBrooks/arspawn"
)

var (
	snapshotPath string
	snapshotSize int
	reportPath   string
	realtime     bool
	fpsLimit     int
)

var runCmd = &cobra.Command{
	Use:   "run <session.yaml>",
	Short: "Play a session and print the placement report",
	Args:  cobra.ExactArgs(1),
	RunE:  runSession,
}

func init() {
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write a top down plan of the session (.png or .webp)")
	runCmd.Flags().IntVar(&snapshotSize, "snapshot-size", 512, "snapshot width and height in pixels")
	runCmd.Flags().StringVarP(&reportPath, "out", "o", "", "write the report here instead of stdout")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "play through engo's headless loop at --fps")
	runCmd.Flags().IntVar(&fpsLimit, "fps", 30, "frame rate for --realtime")
}

func runSession(cmd *cobra.Command, args []string) error {
	session, err := arspawn.LoadSession(args[0])
	if err != nil {
		return err
	}

	var rep arspawn.Report
	if realtime {
		scene := &arspawn.SimScene{Session: session}
		engo.Run(engo.RunOptions{
			Title:        "placesim",
			HeadlessMode: true,
			FPSLimit:     fpsLimit,
		}, scene)
		rep = scene.Report()
	} else {
		rep, err = arspawn.Run(session)
		if err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{
		"placements": len(rep.Placements),
		"removals":   len(rep.Removals),
		"state":      rep.State,
	}).Info("Session done")

	if snapshotPath != "" {
		img := arspawn.RenderPlan(rep, session, snapshotSize)
		if err := arspawn.WriteSnapshot(snapshotPath, img); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		log.Infof("Wrote snapshot to %s", snapshotPath)
	}

	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	if reportPath == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(reportPath, out, 0644)
}
