package ib2c

import (
	"time"

	"ib2c/diag"
	"ib2c/metasignal"
	"ib2c/telemetry"
)

// BehaviorModule wraps a user Module payload so it runs its own periodic
// cycle on its own goroutine (spec.md §4.4). It embeds M so the module's
// own fields and methods (Transfere, TargetRating, and any ports the
// author declared) are promoted straight onto the wrapper — the same
// ergonomic rust_ib2c gets from BehaviorModule<M>'s Deref/DerefMut.
type BehaviorModule[M Module] struct {
	M

	name       string
	cycleTime  time.Duration
	lastUpdate time.Time
	parent     Parent
	loopCount  uint64
}

// NewModule constructs a behaviour module: it builds the payload with
// factory, extends parent's path with name, and leaves the module
// Unspawned (spec.md §4.4's state machine) so callers can finish wiring
// ports before calling Spawn.
func NewModule[M Module](name string, cycleTime time.Duration, parent Parent, factory func() M) *BehaviorModule[M] {
	return &BehaviorModule[M]{
		M:          factory(),
		name:       name,
		cycleTime:  cycleTime,
		lastUpdate: time.Now(),
		parent:     parent.child(name),
	}
}

// Path returns this module's hierarchical telemetry path.
func (bm *BehaviorModule[M]) Path() string { return bm.parent.Path }

// Spawn starts the module's cycle loop on its own goroutine and returns
// immediately. Spawn may only be called once; there is no Stopped state —
// termination is by process exit (spec.md §4.4).
func (bm *BehaviorModule[M]) Spawn() {
	// Re-stamp lastUpdate right before the loop starts, so delta_time on
	// the very first cycle reflects actual time spent inside run rather
	// than however long construction-to-Spawn wiring took (Open Question,
	// SPEC_FULL.md §7: first-cycle delta_time clamp).
	bm.lastUpdate = time.Now()
	diag.Infof("spawned module: %s", bm.parent.Path)
	go bm.run()
}

func (bm *BehaviorModule[M]) run() {
	for {
		start := time.Now()
		bm.cycleOnce(start)

		elapsed := time.Since(start)
		if elapsed < bm.cycleTime {
			time.Sleep(bm.cycleTime - elapsed)
		} else {
			diag.Warnf("module %q running behind schedule, cycle %s, elapsed %s",
				bm.parent.Path, bm.cycleTime, elapsed)
		}
	}
}

// cycleOnce runs the exact per-cycle sequence spec.md §4.4 describes:
// port-update, transfer, meta-signal publish, telemetry emit. It is split
// out from run so tests can drive one cycle deterministically without the
// cycle-time sleep.
func (bm *BehaviorModule[M]) cycleOnce(start time.Time) {
	deltaTime := start.Sub(bm.lastUpdate)
	bm.lastUpdate = start
	bm.SetDeltaTime(deltaTime)

	bm.StimulationPort().Update()
	bm.InhibitionPort().Update()
	updateAllPorts(bm.M)

	bm.Transfere()

	targetRating := bm.TargetRating()

	stimulation, ok := bm.GetStimulation()
	if !ok {
		stimulation = metasignal.HIGH
	}
	inhibition, ok := bm.GetInhibition()
	if !ok {
		inhibition = metasignal.LOW
	}
	potential := metasignal.Min(stimulation, metasignal.Negate(inhibition))
	activity := metasignal.Min(potential, targetRating)

	bm.SetActivity(activity)
	bm.SetTargetRating(targetRating)

	bm.loopCount++

	snap := telemetry.Snapshot{
		Index:        bm.loopCount,
		Source:       bm.parent.Path,
		Activity:     activity.Float32(),
		TargetRating: targetRating.Float32(),
		Stimulation:  stimulation.Float32(),
		Inhibition:   inhibition.Float32(),
		Data:         allPortData(bm.M),
	}.WithActiveTime(time.Since(start))
	bm.parent.TCP.Send(snap)
}
