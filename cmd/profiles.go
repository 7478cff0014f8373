/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mrivkah3/convective-adjustment/InputParameters"
	"github.com/mrivkah3/convective-adjustment/batch"
	"github.com/mrivkah3/convective-adjustment/cache"
	"github.com/mrivkah3/convective-adjustment/log"
	"github.com/mrivkah3/convective-adjustment/plotting"
	"github.com/mrivkah3/convective-adjustment/readfiles"
	"github.com/mrivkah3/convective-adjustment/utils"
)

// displayHold is how long each figure is shown before the next one is rendered
const displayHold = 3 * time.Second

type ProfilesRun struct {
	ExperimentFile string
	Graph          bool
	CSV            bool
	SQLite         string
	Parallel       bool
}

const exampleExperiment = `
########################################
Title: "Average t [200-400] values at x={x} from multiple simulations"
Quantity: N2
XPositions: ["1", "1.45"]          # fields are named "N2 x=1", "N2 x=1.45"
Sources:
  - {Dir: simrbc6b, Label: "Ra=2e6"}
  - {Dir: simrbc7b, Label: "Ra=2e7"}
Windows: ["200:399"]               # start:stop[:stride] over the time index
Plot:
  XLim: [-1, 2]
  Output: "plots/average_t_x={x}_all_rbc.png"
########################################
`

// ProfilesCmd represents the profiles command
var ProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Average fields over time windows and plot the depth profiles",
	Long: `
Reads <Dir>/analysis/analysis_s1.h5 for every source in the experiment file, averages each
configured field over each time window and writes one figure per field.

convadj profiles -I experiment.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ex  *InputParameters.Experiment
		)
		pr := &ProfilesRun{}
		if pr.ExperimentFile, err = cmd.Flags().GetString("experiment"); err != nil {
			panic(err)
		}
		pr.Graph, _ = cmd.Flags().GetBool("graph")
		pr.CSV, _ = cmd.Flags().GetBool("csv")
		pr.SQLite, _ = cmd.Flags().GetString("sqlite")
		pr.Parallel, _ = cmd.Flags().GetBool("parallel")
		if ex, err = processExperiment(pr); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		ex.Print()
		d := batch.NewDriver(readfiles.NewOpener(ex.Scales), log.GetSugaredLogger())
		d.Parallel = ex.Parallel
		if d.Cache, err = cache.New(viper.GetString("cache.dir"), viper.GetInt("cache.entries")); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if _, err = RunProfiles(context.Background(), d, ex, pr); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if pr.Graph {
			fmt.Println("Figures displayed, interrupt to exit")
			for {
				time.Sleep(time.Second)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(ProfilesCmd)
	ProfilesCmd.Flags().StringP("experiment", "I", "", "YAML experiment file listing sources, fields and windows")
	ProfilesCmd.Flags().BoolP("graph", "g", false, "display each figure in a window after writing it")
	ProfilesCmd.Flags().Bool("csv", false, "also write the profiles as CSV next to each figure")
	ProfilesCmd.Flags().String("sqlite", "", "append the profiles to this SQLite archive")
	ProfilesCmd.Flags().BoolP("parallel", "p", false, "read sources concurrently")
}

func processExperiment(pr *ProfilesRun) (ex *InputParameters.Experiment, err error) {
	var (
		data []byte
	)
	if len(pr.ExperimentFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleExperiment)
		err = fmt.Errorf("must supply an experiment file (-I, --experiment)")
		return
	}
	if data, err = os.ReadFile(pr.ExperimentFile); err != nil {
		return
	}
	ex = &InputParameters.Experiment{}
	if err = ex.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", pr.ExperimentFile, err)
	}
	// Command line switches add to what the file asks for
	ex.Parallel = ex.Parallel || pr.Parallel
	ex.Plot.CSV = ex.Plot.CSV || pr.CSV
	if len(pr.SQLite) != 0 {
		ex.Plot.SQLite = pr.SQLite
	}
	return
}

// RunProfiles runs every field of the experiment and renders a figure for each
func RunProfiles(ctx context.Context, d *batch.Driver, ex *InputParameters.Experiment,
	pr *ProfilesRun) (results []*batch.Result, err error) {
	var (
		logger = d.Log
		sink   = buildSink(ex, pr)
	)
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if results, err = d.RunAll(ctx, ex); err != nil {
		return
	}
	for _, r := range results {
		for _, sk := range r.Skipped {
			fmt.Println(skipMessage(sk))
		}
		if len(r.Series) == 0 {
			logger.Warnw("no profiles for field, figure not written", "field", r.Spec.Name)
			continue
		}
		fig := batch.Figure(ex, r)
		if err = sink.Render(fig); err != nil {
			return
		}
		logger.Infow("figure written", "field", r.Spec.Name, "output", fig.Output,
			"series", len(fig.Series), "skipped", len(r.Skipped))
	}
	logger.Debugw("memory", "usage", utils.GetMemUsage())
	return
}

func skipMessage(sk batch.Skip) string {
	if errors.Is(sk.Reason, readfiles.ErrSourceNotFound) {
		return fmt.Sprintf("File %s not found, skipped", sk.Path)
	}
	return fmt.Sprintf("File %s skipped: %v", sk.Path, sk.Reason)
}

func buildSink(ex *InputParameters.Experiment, pr *ProfilesRun) (ms plotting.MultiSink) {
	ms = plotting.MultiSink{plotting.PNGSink{}}
	if ex.Plot.CSV {
		ms = append(ms, plotting.CSVSink{})
	}
	if len(ex.Plot.SQLite) != 0 {
		ms = append(ms, plotting.SQLiteSink{Path: ex.Plot.SQLite})
	}
	if pr != nil && pr.Graph {
		ms = append(ms, plotting.DisplaySink{Hold: displayHold})
	}
	return
}
