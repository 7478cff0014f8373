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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrivkah3/convective-adjustment/readfiles"
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect file.h5 [file.h5 ...]",
	Short: "List the fields of analysis files with their shapes and time spans",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			names readfiles.ScaleNames
		)
		names.TaskGroup, _ = cmd.Flags().GetString("taskGroup")
		names.ScaleGroup, _ = cmd.Flags().GetString("scaleGroup")
		names.Time, _ = cmd.Flags().GetString("timeScale")
		names.Depth, _ = cmd.Flags().GetString("depthScale")
		open := readfiles.NewOpener(names)
		failed := false
		for _, path := range args {
			if err := Inspect(os.Stdout, open, path); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
	InspectCmd.Flags().String("taskGroup", readfiles.DefaultScales.TaskGroup, "group holding the fields")
	InspectCmd.Flags().String("scaleGroup", readfiles.DefaultScales.ScaleGroup, "group holding the dimension scales")
	InspectCmd.Flags().String("timeScale", readfiles.DefaultScales.Time, "name of the time scale")
	InspectCmd.Flags().String("depthScale", readfiles.DefaultScales.Depth, "name prefix of the depth scale")
}

// Inspect prints one line per field of the dataset at path
func Inspect(w io.Writer, open readfiles.Opener, path string) (err error) {
	var (
		ds readfiles.Dataset
	)
	if ds, err = open(path); err != nil {
		return
	}
	defer ds.Close()
	fmt.Fprintf(w, "%s\n", path)
	for _, name := range ds.Fields() {
		f, ferr := ds.Field(name)
		if ferr != nil {
			fmt.Fprintf(w, "\t%-24s unreadable: %v\n", name, ferr)
			continue
		}
		fmt.Fprintf(w, "\t%s\n", f.String())
	}
	return
}
