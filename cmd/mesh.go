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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/gowarp/export"
	"github.com/notargets/gowarp/graphics"
	"github.com/notargets/gowarp/overlay"
	"github.com/notargets/gowarp/scene"
	"github.com/notargets/gowarp/utils"
)

type MeshOutputs struct {
	PNGFile      string
	GeoJSONFile  string
	PolygonsFile string
	Plot         bool
	Hold         time.Duration
	Show         bool
}

// MeshCmd builds the surface for the configured scene and reports on it
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Build the surface mesh and report statistics",
	Long: `
Builds the surface for the preset and polygons of the scene, then prints the
mesh statistics. The overlay can be painted to a PNG, the scene exported as
GeoJSON, and the footprint shown in a plot window.

gowarp mesh -p paraboloid --png overlay.png --geojson scene.geojson`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mo := &MeshOutputs{}
		mo.PNGFile, _ = cmd.Flags().GetString("png")
		mo.GeoJSONFile, _ = cmd.Flags().GetString("geojson")
		mo.PolygonsFile, _ = cmd.Flags().GetString("polygons")
		mo.Plot, _ = cmd.Flags().GetBool("plot")
		hold, _ := cmd.Flags().GetInt("hold")
		mo.Hold = time.Duration(hold) * time.Millisecond
		mo.Show, _ = cmd.Flags().GetBool("show")
		var (
			sc  *scene.Scene
			log *zap.Logger
		)
		if sc, log, err = newScene(cmd); err != nil {
			return
		}
		defer log.Sync()
		return RunMesh(cmd.OutOrStdout(), sc, mo)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().String("png", "", "paint the overlay to this PNG file")
	MeshCmd.Flags().String("geojson", "", "export polygons and ball to this GeoJSON file")
	MeshCmd.Flags().String("polygons", "", "load polygons from this GeoJSON file")
	MeshCmd.Flags().BoolP("plot", "g", false, "show the surface footprint in a plot window")
	MeshCmd.Flags().IntP("hold", "d", 0, "milliseconds to hold the plot window, 0 holds until killed")
	MeshCmd.Flags().Bool("show", false, "print the scene parameters")
}

func RunMesh(out io.Writer, sc *scene.Scene, mo *MeshOutputs) (err error) {
	if mo.PolygonsFile != "" {
		polys, err := export.ReadPolygonsFile(mo.PolygonsFile)
		if err != nil {
			return err
		}
		sc.LoadPolygons(polys)
	}
	if mo.Show {
		sc.Params.Print()
	}
	PrintSurfaceStats(out, sc)
	sc.Logger().Debug("memory", zap.String("usage", utils.GetMemUsage()))
	if mo.PNGFile != "" {
		if err = PaintOverlay(sc, mo.PNGFile); err != nil {
			return
		}
		fmt.Fprintf(out, "overlay written to %s\n", mo.PNGFile)
	}
	if mo.GeoJSONFile != "" {
		if err = export.WriteFile(mo.GeoJSONFile, sc.Snapshot()); err != nil {
			return
		}
		fmt.Fprintf(out, "scene exported to %s\n", mo.GeoJSONFile)
	}
	if mo.Plot {
		s := sc.Surface()
		if s.IsEmpty() {
			return errors.New("nothing to plot, the surface is empty")
		}
		var outlines [][]float32
		for _, rg := range sc.Regions() {
			outlines = append(outlines, graphics.ClosedLoopSegments(rg.Overlay))
		}
		graphics.PlotFootprint(graphics.TriMeshFromPacked(s.Positions, s.Indices), outlines, mo.Hold)
	}
	return
}

func PrintSurfaceStats(out io.Writer, sc *scene.Scene) {
	s := sc.Surface()
	bytes := uint64(8*(len(s.Positions)+len(s.Normals)) + 4*(len(s.Colors)+len(s.Indices)))
	fmt.Fprintf(out, "[%s]\t\t= Field (%s)\n", sc.Preset().Label, sc.Field().Kind())
	fmt.Fprintf(out, "[%d]\t\t\t= Polygons\n", len(sc.Regions()))
	fmt.Fprintf(out, "[%s]\t\t= Vertices\n", humanize.Comma(int64(s.NumVertices())))
	fmt.Fprintf(out, "[%s]\t\t= Triangles\n", humanize.Comma(int64(s.NumTriangles())))
	fmt.Fprintf(out, "[%8.5f,%8.5f]\t= Z range\n", s.ZMin, s.ZMax)
	fmt.Fprintf(out, "[%d]\t\t\t= Non-finite coordinates\n", utils.CountNonFinite(s.Positions))
	fmt.Fprintf(out, "[%s]\t\t= Buffer size\n", humanize.IBytes(bytes))
}

// PaintOverlay runs one frame of the scene through a PNG painter
func PaintOverlay(sc *scene.Scene, path string) (err error) {
	pt := overlay.NewPainter(sc.Transform)
	defer pt.Close()
	if err = pt.Paint(sc.OverlayFrame()); err != nil {
		return
	}
	return pt.SavePNG(path)
}
