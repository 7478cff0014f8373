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
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrivkah3/convective-adjustment/log"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "convadj",
	Short: "Depth profiles from Rayleigh-Benard convection analysis files",
	Long: `
Reads the analysis files written by a convection run, averages a field over windows of its
time axis and plots the resulting depth profiles, overlaying runs or windows on one figure.

convadj profiles -I experiment.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if err = log.Init(log.Options{
			Debug: viper.GetBool("debug"),
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		}); err != nil {
			return
		}
		switch mode := viper.GetString("profile"); mode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return fmt.Errorf("unknown profile mode %q, expected cpu or mem", mode)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
		log.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.convective-adjustment.yaml)")
	pf.Bool("debug", false, "development logging at debug level")
	pf.String("logLevel", "", "log level: debug, info, warn or error")
	pf.String("logFile", "", "also log to this rotating file")
	pf.String("cacheDir", "", "directory for cached profiles, empty keeps the cache in memory")
	pf.Int("cacheEntries", 0, "number of profiles held in memory")
	pf.String("profile", "", "write a cpu or mem profile to the working directory")
	for key, flag := range map[string]string{
		"debug":         "debug",
		"log.level":     "logLevel",
		"log.file":      "logFile",
		"cache.dir":     "cacheDir",
		"cache.entries": "cacheEntries",
		"profile":       "profile",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".convective-adjustment")
	}
	viper.SetEnvPrefix("CONVADJ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
