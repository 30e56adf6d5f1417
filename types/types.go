package types

import (
	"strings"

	"github.com/pkg/errors"
)

type FieldKind uint8

const (
	FieldPreset FieldKind = iota
	FieldBarrier
)

func (fk FieldKind) String() string {
	switch fk {
	case FieldPreset:
		return "Preset"
	case FieldBarrier:
		return "Barrier"
	}
	return "Unknown"
}

/*
MeshMode selects how the surface is built once polygons exist. MeshAuto uses the
Delaunay clamped mesh over the first polygon, MeshLattice keeps the regular
lattice culled to the union of all polygons.
*/
type MeshMode uint8

const (
	MeshAuto MeshMode = iota
	MeshLattice
	MeshClamped
)

var MeshModeNameMap = map[string]MeshMode{
	"":         MeshAuto,
	"auto":     MeshAuto,
	"lattice":  MeshLattice,
	"grid":     MeshLattice,
	"clamped":  MeshClamped,
	"delaunay": MeshClamped,
}

func (mm MeshMode) String() string {
	switch mm {
	case MeshAuto:
		return "auto"
	case MeshLattice:
		return "lattice"
	case MeshClamped:
		return "clamped"
	}
	return "unknown"
}

func NewMeshMode(label string) (mm MeshMode, err error) {
	var ok bool
	if mm, ok = MeshModeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = errors.Errorf("unknown mesh mode %q", label)
	}
	return
}

type EasingType uint8

const (
	EaseLinear EasingType = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
)

var EasingNameMap = map[string]EasingType{
	"":           EaseLinear,
	"linear":     EaseLinear,
	"easein":     EaseIn,
	"easeout":    EaseOut,
	"easeinout":  EaseInOut,
	"cubicin":    EaseCubicIn,
	"cubicout":   EaseCubicOut,
	"cubicinout": EaseCubicInOut,
}

var easingNames = []string{"linear", "easeIn", "easeOut", "easeInOut", "cubicIn", "cubicOut", "cubicInOut"}

func (et EasingType) String() string {
	if int(et) < len(easingNames) {
		return easingNames[et]
	}
	return "unknown"
}

func NewEasingType(label string) (et EasingType, err error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(label))
	var ok bool
	if et, ok = EasingNameMap[key]; !ok {
		err = errors.Errorf("unknown easing %q", label)
	}
	return
}
