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

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gowarp/InputParameters"
	"github.com/notargets/gowarp/scene"
	"github.com/notargets/gowarp/utils"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gowarp",
	Short: "Intrinsic norm warping of scalar field surfaces",
	Long: `
Renders a scalar field z = f(x,y) as a triangulated surface and warps the plane
around a surface point so that Euclidean distance matches the local intrinsic
norm of the field. Polygons restrict the domain and replace the field with a
log barrier.

gowarp mesh -I scene.yaml --png overlay.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return startProfile(viper.GetString("profile"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gowarp.yaml)")
	pf.StringP("inputConditionsFile", "I", "", "YAML file of scene parameters")
	pf.BoolP("verbose", "v", false, "debug level console logging")
	pf.String("profile", "", "write a cpu or mem profile to the current directory")
	pf.StringP("preset", "p", "", "field preset, by name, label or index")
	pf.IntP("samples", "n", 0, "lattice samples per axis")
	pf.Float64("cap", 0, "maximum height of the polygon clamped mesh")
	pf.String("easing", "", "tween easing curve")
	pf.Float64("duration", 0, "tween duration in seconds")
	pf.String("meshMode", "", "auto, lattice or clamped")
	for _, key := range []string{"verbose", "profile", "preset", "samples", "cap", "easing", "duration", "meshMode"} {
		_ = viper.BindPFlag(key, pf.Lookup(key))
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
		// Search config in home directory with name ".gowarp" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gowarp")
	}
	viper.SetEnvPrefix("gowarp")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func startProfile(kind string) (err error) {
	switch strings.ToLower(kind) {
	case "":
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		err = errors.Errorf("unknown profile %q, want cpu or mem", kind)
	}
	return
}

/*
loadParameters starts from the defaults, overlays the YAML input file when one
is named, then the config file and flag values held by v.
*/
func loadParameters(v *viper.Viper, inputFile string) (sp *InputParameters.SceneParameters, err error) {
	sp = InputParameters.NewSceneParameters()
	if inputFile != "" {
		var data []byte
		if data, err = os.ReadFile(inputFile); err != nil {
			return nil, errors.Wrapf(err, "reading %s", inputFile)
		}
		if err = sp.Parse(data); err != nil {
			return nil, errors.Wrap(err, inputFile)
		}
	}
	if v.IsSet("preset") {
		sp.Preset = v.GetString("preset")
	}
	if v.IsSet("samples") {
		sp.Samples = v.GetInt("samples")
	}
	if v.IsSet("cap") {
		sp.CapZ = v.GetFloat64("cap")
	}
	if v.IsSet("easing") {
		sp.Easing = v.GetString("easing")
	}
	if v.IsSet("duration") {
		sp.TweenSeconds = v.GetFloat64("duration")
	}
	if v.IsSet("meshMode") {
		sp.MeshMode = v.GetString("meshMode")
	}
	if err = sp.Validate(); err != nil {
		return nil, err
	}
	return
}

func newScene(cmd *cobra.Command, opts ...scene.Option) (sc *scene.Scene, log *zap.Logger, err error) {
	var (
		sp        *InputParameters.SceneParameters
		inputFile string
	)
	log = utils.NewLogger(viper.GetBool("verbose"))
	if inputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if sp, err = loadParameters(viper.GetViper(), inputFile); err != nil {
		return
	}
	sc, err = scene.New(sp, append([]scene.Option{scene.WithLogger(log)}, opts...)...)
	return
}
