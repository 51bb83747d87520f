package sensors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Nikitarc/mazerunner-core/config"
)

// occlusionRaw is the raw front channel level that counts as a covered
// sensor during the start gesture. Raw values are used on purpose; a
// hand is much brighter than any wall, so calibration does not matter.
const occlusionRaw = 100

// maxFailStreak is how many consecutive failed acquisition cycles are
// tolerated before WaitForStart gives up on the source.
const maxFailStreak = 50

// Source is the hardware seam for the sensor board. Implementations are
// expected to be cheap to call at the sampling rate.
type Source interface {
	// SetEmitters switches the IR emitters on or off.
	SetEmitters(on bool)

	// Read samples all four channels once.
	Read() (Channels, error)
}

// Sampler runs the acquisition cycle and publishes the latest Snapshot.
// All methods are safe for concurrent use.
type Sampler struct {
	src      Source
	est      Estimator
	interval time.Duration

	enabled    atomic.Bool
	mode       atomic.Int32
	failStreak atomic.Int32

	mu   sync.RWMutex
	seq  uint64
	snap Snapshot
}

// NewSampler builds a sampler over src using the profile's calibration
// and loop timing.
func NewSampler(src Source, prof config.Profile) *Sampler {
	return &Sampler{
		src:      src,
		est:      NewEstimator(prof),
		interval: prof.LoopInterval,
	}
}

// Run drives the acquisition cycle at the profile's loop rate until ctx
// is cancelled. It always leaves the emitters off on exit.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.src.SetEmitters(false)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle()
		}
	}
}

// cycle performs one dark read, one lit read, and publishes the result.
func (s *Sampler) cycle() {
	mode := Mode(s.mode.Load())

	if !s.enabled.Load() {
		s.publish(Snapshot{Mode: mode})
		return
	}

	dark, err := s.src.Read()
	if err != nil {
		s.readFailed(err)
		return
	}
	s.src.SetEmitters(true)
	lit, err := s.src.Read()
	s.src.SetEmitters(false)
	if err != nil {
		s.readFailed(err)
		return
	}
	s.failStreak.Store(0)

	raw := lit.sub(dark)
	s.publish(Snapshot{
		Reading: s.est.Evaluate(raw, mode),
		Raw:     raw,
		Mode:    mode,
		Enabled: true,
	})
}

func (s *Sampler) readFailed(err error) {
	s.failStreak.Add(1)
	log.WithError(err).Warn("sensors: acquisition cycle failed")
}

func (s *Sampler) publish(snap Snapshot) {
	s.mu.Lock()
	s.seq++
	snap.Seq = s.seq
	s.snap = snap
	s.mu.Unlock()
}

// Latest returns the most recently published snapshot. It never blocks
// on acquisition.
func (s *Sampler) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Enable starts firing the emitters and evaluating walls from the next
// cycle on.
func (s *Sampler) Enable() {
	s.enabled.Store(true)
}

// Disable stops the emitters. Later snapshots carry zero readings until
// the sampler is enabled again.
func (s *Sampler) Disable() {
	s.enabled.Store(false)
}

// Enabled reports whether acquisition is live.
func (s *Sampler) Enabled() bool {
	return s.enabled.Load()
}

// SetSteeringMode switches the cross-track evaluation for subsequent
// cycles.
func (s *Sampler) SetSteeringMode(m Mode) {
	s.mode.Store(int32(m))
}

// SteeringMode returns the active steering mode.
func (s *Sampler) SteeringMode() Mode {
	return Mode(s.mode.Load())
}

// WaitForStart blocks until the operator covers one front sensor for a
// few polls and releases it, returning which side was covered. The
// sampler is enabled for the duration; if it was disabled before, it is
// disabled again on return.
//
// The wait honours ctx. It also fails with ErrSourceRead when the
// source keeps erroring, since no gesture could ever be seen.
func (s *Sampler) WaitForStart(ctx context.Context) (StartSide, error) {
	wasEnabled := s.enabled.Swap(true)
	if !wasEnabled {
		defer s.Disable()
	}

	// A hold of holdPolls polls at ten loop intervals is a deliberate
	// gesture, not a passing shadow.
	const holdPolls = 5
	ticker := time.NewTicker(10 * s.interval)
	defer ticker.Stop()

	var lastSeq uint64
	leftRun, rightRun := 0, 0

	for {
		select {
		case <-ctx.Done():
			return StartNone, ctx.Err()
		case <-ticker.C:
			if int(s.failStreak.Load()) > maxFailStreak {
				return StartNone, ErrSourceRead
			}
			snap := s.Latest()
			if snap.Seq == lastSeq {
				continue
			}
			lastSeq = snap.Seq

			switch {
			case occludedLeft(snap):
				leftRun++
				rightRun = 0
			case occludedRight(snap):
				rightRun++
				leftRun = 0
			default:
				if leftRun > holdPolls {
					return StartLeft, nil
				}
				if rightRun > holdPolls {
					return StartRight, nil
				}
				leftRun, rightRun = 0, 0
			}
		}
	}
}

func occludedLeft(s Snapshot) bool {
	return s.Raw.LeftFront > occlusionRaw && s.Raw.RightFront < occlusionRaw
}

func occludedRight(s Snapshot) bool {
	return s.Raw.RightFront > occlusionRaw && s.Raw.LeftFront < occlusionRaw
}
