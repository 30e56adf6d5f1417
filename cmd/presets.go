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

	"github.com/spf13/cobra"

	"github.com/notargets/gowarp/field"
)

// PresetsCmd lists the field catalogue
var PresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset scalar fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, p := range field.Presets {
			fmt.Fprintf(out, "[%d]\t%-18s%-18s%s\n", i, p.Name, p.Label, p.TeX)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(PresetsCmd)
}
