package main

import (
	"os"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ScottBrooks/arspawn"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "placesim",
	Short:         "Replay AR placement sessions",
	Long:          `placesim plays back scripted AR sessions against the placement systems and reports where things ended up.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
		log.SetOutput(colorable.NewColorableStderr())
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		arspawn.SetLogger(log.WithField("pkg", "arspawn"))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per frame diagnostics")
	rootCmd.AddCommand(runCmd, defaultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
