package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/railops/trackplan/config"
	"github.com/railops/trackplan/core/model"
	"github.com/railops/trackplan/core/scheduling"
	"github.com/railops/trackplan/infra/logger"
)

var (
	disruptTrain string
	disruptDelay float64
	disruptBlock int
)

var disruptCmd = &cobra.Command{
	Use:   "disrupt",
	Short: "Compare the baseline schedule against a disruption scenario",
	Long: `Runs the scheduling pipeline twice, once unmodified and once after
applying the disruption given by flags (or the config file when no flag is
set), and prints both schedules as JSON.`,
	RunE: runDisrupt,
}

func init() {
	disruptCmd.Flags().StringVar(&disruptTrain, "train", "", "train id to delay")
	disruptCmd.Flags().Float64Var(&disruptDelay, "delay", 0, "delay minutes for --train")
	disruptCmd.Flags().IntVar(&disruptBlock, "block", -1, "track id to block")
	rootCmd.AddCommand(disruptCmd)
}

func runDisrupt(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	disruption, err := disruptionFromFlags(cfg)
	if err != nil {
		return err
	}

	planner := scheduling.NewPlanner(cfg.Railway, logger.New("disrupt-command"))
	res := planner.Reschedule(cfg.Fleet.TrainList(), disruption)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func disruptionFromFlags(cfg *config.Config) (model.Disruption, error) {
	var d model.Disruption
	switch {
	case disruptTrain != "":
		d = model.Disruption{Type: model.DisruptionDelay, TrainID: disruptTrain, DelayMinutes: disruptDelay}
	case disruptBlock >= 0:
		d = model.Disruption{Type: model.DisruptionBlockTrack, Track: disruptBlock}
	case cfg.Disruption.Enabled:
		d = cfg.Disruption.Disruption()
	default:
		return d, fmt.Errorf("no disruption given: use --train/--delay, --block or the config file")
	}
	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}
