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

var planGreedyOnly bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute one schedule and print it as JSON",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planGreedyOnly, "greedy", false, "skip the improvement pass")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	planner := scheduling.NewPlanner(cfg.Railway, logger.New("plan-command"))
	trains := scheduling.PrepareTrains(cfg.Fleet.TrainList(), cfg.Railway)
	var sched model.Schedule
	if planGreedyOnly {
		sched = planner.ScheduleGreedy(trains)
	} else {
		sched = planner.ScheduleOptimized(trains)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sched)
}
