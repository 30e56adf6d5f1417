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
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gowarp/animator"
	"github.com/notargets/gowarp/export"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/scene"
)

type WarpRun struct {
	X, Y        float64
	AnchorSet   bool
	Frame       time.Duration
	RoundTrip   bool
	PNGFile     string
	GeoJSONFile string
}

type WarpReport struct {
	Anchor       [2]float64
	Frames       int
	Displacement float64 // Largest planar vertex move when warped
	Residual     float64 // Largest vertex difference after the round trip
	BallMin      float64
	BallMax      float64
}

// WarpCmd drives a full deformation without a display
var WarpCmd = &cobra.Command{
	Use:   "warp",
	Short: "Warp the surface about an anchor point and report the result",
	Long: `
Clicks the surface at the anchor point, steps frames until the deformation
settles, and reports how far the surface moved. With --roundtrip the deformation
is played back and the residual against the original surface is reported.

gowarp warp -p tilted-quadratic --x 1 --y 0.5 --roundtrip`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		wr := &WarpRun{}
		wr.X, _ = cmd.Flags().GetFloat64("x")
		wr.Y, _ = cmd.Flags().GetFloat64("y")
		wr.AnchorSet = cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
		fr, _ := cmd.Flags().GetInt("frame")
		wr.Frame = time.Duration(fr) * time.Millisecond
		wr.RoundTrip, _ = cmd.Flags().GetBool("roundtrip")
		wr.PNGFile, _ = cmd.Flags().GetString("png")
		wr.GeoJSONFile, _ = cmd.Flags().GetString("geojson")
		var (
			sc  *scene.Scene
			log *zap.Logger
			rep *WarpReport
		)
		if sc, log, err = newScene(cmd); err != nil {
			return
		}
		defer log.Sync()
		if rep, err = RunWarp(sc, wr, time.Now()); err != nil {
			return
		}
		rep.Print(cmd.OutOrStdout())
		return
	},
}

func init() {
	rootCmd.AddCommand(WarpCmd)
	WarpCmd.Flags().Float64("x", 0, "anchor x")
	WarpCmd.Flags().Float64("y", 0, "anchor y")
	WarpCmd.Flags().Int("frame", 16, "frame interval in milliseconds")
	WarpCmd.Flags().Bool("roundtrip", false, "reverse the deformation after it settles")
	WarpCmd.Flags().String("png", "", "paint the warped overlay to this PNG file")
	WarpCmd.Flags().String("geojson", "", "export the warped scene to this GeoJSON file")
}

func RunWarp(sc *scene.Scene, wr *WarpRun, start time.Time) (rep *WarpReport, err error) {
	x, y := wr.X, wr.Y
	if !wr.AnchorSet && sc.Params.Anchor != nil {
		x, y = sc.Params.Anchor[0], sc.Params.Anchor[1]
	}
	if wr.Frame <= 0 {
		wr.Frame = 16 * time.Millisecond
	}
	maxFrames := int(sc.Tween().Duration/wr.Frame) + 2
	ray := mesh.VerticalRay(x, y)
	if _, ok := sc.Pick(ray); !ok {
		if ray, ok = sc.SnapRay(x, y); !ok {
			return nil, errors.New("the surface is empty, nothing to warp")
		}
		sc.Logger().Info("anchor off the mesh, snapped to the nearest vertex",
			zap.Float64("x", x), zap.Float64("y", y))
	}
	var (
		phase animator.Phase
		now   time.Time
	)
	if phase, err = sc.SurfaceClick(start, ray); err != nil {
		return
	}
	if phase != animator.Forward {
		return nil, errors.Errorf("deformation did not start, phase %s", phase)
	}
	if now, err = sc.RunUntilSettled(start, wr.Frame, maxFrames); err != nil {
		return
	}
	a := sc.Anchor().Position
	rep = &WarpReport{
		Anchor:       [2]float64{a.X, a.Y},
		Frames:       int(now.Sub(start)/wr.Frame) + 1,
		Displacement: floats.Distance(sc.Original().Positions, sc.Surface().Positions, math.Inf(1)),
	}
	rep.BallMin, rep.BallMax = radiusRange(sc.StaticBall(), a.X, a.Y)
	if wr.PNGFile != "" {
		if err = PaintOverlay(sc, wr.PNGFile); err != nil {
			return
		}
	}
	if wr.GeoJSONFile != "" {
		if err = export.WriteFile(wr.GeoJSONFile, sc.Snapshot()); err != nil {
			return
		}
	}
	if !wr.RoundTrip {
		return
	}
	orig := append([]float64(nil), sc.Original().Positions...)
	back := now.Add(wr.Frame)
	if _, err = sc.SurfaceClick(back, ray); err != nil {
		return
	}
	var end time.Time
	if end, err = sc.RunUntilSettled(back, wr.Frame, maxFrames); err != nil {
		return
	}
	rep.Frames += int(end.Sub(back)/wr.Frame) + 1
	rep.Residual = floats.Distance(orig, sc.Surface().Positions, math.Inf(1))
	return
}

func radiusRange(ball []float64, cx, cy float64) (rMin, rMax float64) {
	if len(ball) < 2 {
		return
	}
	rMin = math.Inf(1)
	for i := 0; i+1 < len(ball); i += 2 {
		r := math.Hypot(ball[i]-cx, ball[i+1]-cy)
		rMin, rMax = math.Min(rMin, r), math.Max(rMax, r)
	}
	return
}

func (rep *WarpReport) Print(out io.Writer) {
	fmt.Fprintf(out, "(%8.5f,%8.5f)\t= Anchor\n", rep.Anchor[0], rep.Anchor[1])
	fmt.Fprintf(out, "[%d]\t\t\t= Frames\n", rep.Frames)
	fmt.Fprintf(out, "%12.5e\t\t= Max displacement\n", rep.Displacement)
	fmt.Fprintf(out, "[%8.5f,%8.5f]\t= Warped ball radius\n", rep.BallMin, rep.BallMax)
	fmt.Fprintf(out, "%12.5e\t\t= Round trip residual\n", rep.Residual)
}
