package animator

import (
	"time"

	"github.com/pkg/errors"

	"github.com/notargets/gowarp/types"
)

const DefaultDuration = time.Second

var (
	ErrBusy       = errors.New("a deformation is already active")
	ErrNotWarped  = errors.New("no deformation to reverse")
	ErrTrackShape = errors.New("track snapshots do not match the buffer length")
)

type Phase uint8

const (
	Inactive Phase = iota
	Forward
	Warped
	Reverse
)

func (p Phase) String() string {
	switch p {
	case Inactive:
		return "inactive"
	case Forward:
		return "forward"
	case Warped:
		return "warped"
	case Reverse:
		return "reverse"
	}
	return "unknown"
}

/*
Track is one buffer under animation. Buf is written in place on every step,
Start and End are the snapshots it is interpolated between.
*/
type Track struct {
	Name       string
	Buf        []float64
	Start, End []float64
}

// NewTrack snapshots the current contents of buf as the start of the track
func NewTrack(name string, buf, end []float64) *Track {
	return &Track{
		Name:  name,
		Buf:   buf,
		Start: append([]float64(nil), buf...),
		End:   append([]float64(nil), end...),
	}
}

func (tr *Track) set(w float64) {
	for i, s := range tr.Start {
		tr.Buf[i] = s + w*(tr.End[i]-s)
	}
}

/*
Tween drives a set of tracks between their snapshots on caller supplied time.
Forward runs Start -> End and settles Warped, Reverse runs End -> Start and
settles Inactive. Reversing mid-flight reuses the same snapshots and rebases the
clock so the buffers continue from where they are.
*/
type Tween struct {
	Duration  time.Duration
	Easing    types.EasingType
	phase     Phase
	startTime time.Time
	tracks    []*Track
}

func New(duration time.Duration, easing types.EasingType) *Tween {
	return &Tween{Duration: duration, Easing: easing}
}

func (tw *Tween) Phase() Phase { return tw.phase }
func (tw *Tween) Tracks() []*Track { return tw.tracks }
func (tw *Tween) Active() bool { return tw.phase == Forward || tw.phase == Reverse }
func (tw *Tween) Deformed() bool { return tw.phase != Inactive }

func (tw *Tween) Track(name string) *Track {
	for _, tr := range tw.tracks {
		if tr.Name == name {
			return tr
		}
	}
	return nil
}

// Begin starts a forward deformation, only allowed while Inactive
func (tw *Tween) Begin(now time.Time, tracks ...*Track) error {
	if tw.phase != Inactive {
		return errors.Wrapf(ErrBusy, "phase %s", tw.phase)
	}
	for _, tr := range tracks {
		if len(tr.Start) != len(tr.Buf) || len(tr.End) != len(tr.Buf) {
			return errors.Wrapf(ErrTrackShape, "track %q", tr.Name)
		}
	}
	tw.tracks = tracks
	tw.phase = Forward
	tw.startTime = now
	return nil
}

/*
Reverse plays the deformation back toward the start snapshots. From Warped it
starts at the end snapshot, during Forward it continues from the current
progress.
*/
func (tw *Tween) Reverse(now time.Time) error {
	switch tw.phase {
	case Warped:
		tw.startTime = now
	case Forward:
		a := tw.fraction(now)
		tw.startTime = now.Add(-time.Duration((1 - a) * float64(tw.Duration)))
	default:
		return errors.Wrapf(ErrNotWarped, "phase %s", tw.phase)
	}
	tw.phase = Reverse
	return nil
}

func (tw *Tween) fraction(now time.Time) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	a := float64(now.Sub(tw.startTime)) / float64(tw.Duration)
	switch {
	case a < 0:
		return 0
	case a > 1:
		return 1
	}
	return a
}

/*
Progress is the eased position between the start (0) and end (1) snapshots at
time now.
*/
func (tw *Tween) Progress(now time.Time) float64 {
	switch tw.phase {
	case Forward:
		return Ease(tw.fraction(now), tw.Easing)
	case Warped:
		return 1
	case Reverse:
		return Ease(1-tw.fraction(now), tw.Easing)
	}
	return 0
}

/*
Step writes every track for time now. When the elapsed fraction reaches 1 the
destination snapshot is copied exactly and settled reports the phase change.
*/
func (tw *Tween) Step(now time.Time) (progress float64, settled bool) {
	if !tw.Active() {
		return tw.Progress(now), false
	}
	a := tw.fraction(now)
	if a >= 1 {
		if tw.phase == Forward {
			for _, tr := range tw.tracks {
				copy(tr.Buf, tr.End)
			}
			tw.phase = Warped
			return 1, true
		}
		for _, tr := range tw.tracks {
			copy(tr.Buf, tr.Start)
		}
		tw.phase = Inactive
		return 0, true
	}
	progress = tw.Progress(now)
	for _, tr := range tw.tracks {
		tr.set(progress)
	}
	return
}

// Reset drops all tracks without touching their buffers
func (tw *Tween) Reset() {
	tw.phase = Inactive
	tw.tracks = nil
}
