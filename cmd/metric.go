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

	"github.com/golang/geo/r2"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gowarp/deform"
	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/metric"
)

// MetricCmd prints the local metric of the active field at a point
var MetricCmd = &cobra.Command{
	Use:   "metric",
	Short: "Print the Hessian, its square root and the intrinsic ball at a point",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		h, _ := cmd.Flags().GetFloat64("step")
		sc, log, err := newScene(cmd)
		if err != nil {
			return
		}
		defer log.Sync()
		PrintMetric(cmd.OutOrStdout(), sc.Field(), x, y, h, sc.Params.BallSteps)
		return
	},
}

func init() {
	rootCmd.AddCommand(MetricCmd)
	MetricCmd.Flags().Float64("x", 0, "x coordinate")
	MetricCmd.Flags().Float64("y", 0, "y coordinate")
	MetricCmd.Flags().Float64("step", metric.DefaultStep, "finite difference step")
}

func PrintMetric(out io.Writer, f field.ScalarField, x, y, h float64, steps int) {
	m := metric.Hessian2D(f, x, y, h)
	fmt.Fprintf(out, "f(%g,%g) = %g\n", x, y, field.Value(f, x, y))
	fmt.Fprintf(out, "A = %v\n", mat.Formatted(m.A(), mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(out, "L = %v\n", mat.Formatted(m.L(), mat.Prefix("    "), mat.Squeeze()))
	if !m.IsFinite() {
		fmt.Fprintln(out, "metric is not finite here, the warp is the identity")
		return
	}
	rMin, rMax := radiusRange(deform.BallPoints(r2.Point{X: x, Y: y}, m, steps), x, y)
	fmt.Fprintf(out, "[%8.5f,%8.5f]\t= Intrinsic ball radius\n", rMin, rMax)
}
