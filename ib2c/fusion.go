package ib2c

import (
	"time"

	"ib2c/diag"
	"ib2c/metasignal"
	"ib2c/port"
	"ib2c/telemetry"
)

// connectedModule is one input the fusion arbitrates over: the three
// index-aligned Receive ports spec.md §4.5 requires — activity, target
// rating, and data — carried together so cycleOnce can read a winner's
// activity, target rating and data in lockstep.
type connectedModule[D any] struct {
	name         string
	activity     *port.ReceivePort[metasignal.MetaSignal]
	targetRating *port.ReceivePort[metasignal.MetaSignal]
	data         *port.ReceivePort[D]
}

// MaximumFusion implements maximum-activity-based fusion (spec.md §4.5): on
// every cycle it reads every connected module's activity, picks the
// highest (insertion order breaks ties), and forwards that module's data
// and activity onward. D is the type carried on the fused data port.
type MaximumFusion[D any] struct {
	name       string
	cycleTime  time.Duration
	parent     Parent
	loopCount  uint64

	inputs []connectedModule[D]

	activity     port.SendPort[metasignal.MetaSignal]
	targetRating port.SendPort[metasignal.MetaSignal]
	data         port.SendPort[D]

	// stimulation/inhibition are never read by the fusion's own arbitration
	// (a fusion has no transfer function to gate): they exist only so a
	// fusion can stand in as a group's characteristic module, which wires
	// a group's own stimulation/inhibition down into whichever child it
	// designates (spec.md §4.5, §4.6).
	stimulation *port.ReceivePort[metasignal.MetaSignal]
	inhibition  *port.ReceivePort[metasignal.MetaSignal]
}

// NewFusion constructs an unspawned MaximumFusion. Inputs are wired
// afterwards with ConnectModule/ConnectModules, mirroring how modules are
// built then wired before Spawn.
func NewFusion[D any](name string, cycleTime time.Duration, parent Parent) *MaximumFusion[D] {
	return &MaximumFusion[D]{
		name:         name,
		cycleTime:    cycleTime,
		parent:       parent.child(name),
		activity:     port.NewSendPort[metasignal.MetaSignal](),
		targetRating: port.NewSendPort[metasignal.MetaSignal](),
		data:         port.NewSendPort[D](),
		stimulation:  port.NewReceivePort[metasignal.MetaSignal](),
		inhibition:   port.NewReceivePort[metasignal.MetaSignal](),
	}
}

// StimulationPort and InhibitionPort satisfy the characteristic interface
// a group's SetCharacteristicModule wires into; a fusion never reads them
// itself.
func (f *MaximumFusion[D]) StimulationPort() *port.ReceivePort[metasignal.MetaSignal] {
	return f.stimulation
}
func (f *MaximumFusion[D]) InhibitionPort() *port.ReceivePort[metasignal.MetaSignal] {
	return f.inhibition
}

// ActivityPort exposes the fused activity output so downstream consumers
// (another fusion, a group's characteristic module wiring) can connect to
// it like any module's activity.
func (f *MaximumFusion[D]) ActivityPort() port.SendPort[metasignal.MetaSignal] { return f.activity }

// TargetRatingPort exposes the fused target_rating output.
func (f *MaximumFusion[D]) TargetRatingPort() port.SendPort[metasignal.MetaSignal] {
	return f.targetRating
}

// DataPort exposes the fused data output.
func (f *MaximumFusion[D]) DataPort() port.SendPort[D] { return f.data }

// ConnectModule adds one contributing input, appending a Receive port
// linked to each of producer.ActivityPort(), producer.TargetRatingPort(),
// and dataSource (spec.md §4.5 "Connect operation"). Later calls append
// after earlier ones, so insertion order (used to break activity ties,
// spec.md §4.5 "Edge cases") is the order ConnectModule is called in.
func (f *MaximumFusion[D]) ConnectModule(name string, producer MetaSignals, dataSource port.SendPort[D]) error {
	activity := port.NewReceivePort[metasignal.MetaSignal]()
	if err := activity.ConnectToSource(producer.ActivityPort().Port()); err != nil {
		return err
	}
	targetRating := port.NewReceivePort[metasignal.MetaSignal]()
	if err := targetRating.ConnectToSource(producer.TargetRatingPort().Port()); err != nil {
		return err
	}
	data := port.NewReceivePort[D]()
	if err := data.ConnectToSource(dataSource.Port()); err != nil {
		return err
	}
	f.inputs = append(f.inputs, connectedModule[D]{name: name, activity: activity, targetRating: targetRating, data: data})
	return nil
}

// fusionInput bundles one ConnectModules entry's producer and data source
// (SPEC_FULL.md §5.2's bulk-connect supplement).
type fusionInput[D any] struct {
	Name     string
	Producer MetaSignals
	Data     port.SendPort[D]
}

// ConnectModules wires several inputs in one call, in the order given,
// returning the first connection error encountered. It exists so a group's
// Init doesn't need one ConnectModule call per behaviour by hand.
func (f *MaximumFusion[D]) ConnectModules(inputs ...fusionInput[D]) error {
	for _, in := range inputs {
		if err := f.ConnectModule(in.Name, in.Producer, in.Data); err != nil {
			return err
		}
	}
	return nil
}

// Spawn starts the fusion's cycle loop on its own goroutine.
func (f *MaximumFusion[D]) Spawn() {
	diag.Infof("spawned fusion: %s", f.parent.Path)
	go f.run()
}

func (f *MaximumFusion[D]) run() {
	for {
		start := time.Now()
		f.cycleOnce(start)
		f.advance(start)
	}
}

// cycleOnce runs one arbitration pass: it picks the highest-activity
// input (ties broken by insertion order, spec.md §4.5/§8 P4,P5), forwards
// its data, activity and target rating, and emits a telemetry snapshot
// carrying both the winner's name and its fused data value, the same way
// a module's snapshot carries its own port values (spec.md §4.5 step 5,
// "exactly as in §4.4"). It is split out from run so tests can drive a
// single deterministic cycle without the sleep loop.
func (f *MaximumFusion[D]) cycleOnce(start time.Time) {
	for _, in := range f.inputs {
		in.targetRating.Update()
	}

	winner := -1
	var winningActivity metasignal.MetaSignal = metasignal.LOW
	for i, in := range f.inputs {
		in.activity.Update()
		a, ok := in.activity.Get()
		if !ok {
			continue
		}
		if winner == -1 || a > winningActivity {
			winner = i
			winningActivity = a
		}
	}

	f.loopCount++

	if winner == -1 {
		return
	}

	in := &f.inputs[winner]
	in.data.Update()
	value, ok := in.data.Get()
	if !ok {
		// The highest-activity module has no data yet this cycle; skip
		// fusing rather than forward a stale or zero value (Open
		// Question, SPEC_FULL.md §7).
		return
	}

	winningTargetRating, ok := in.targetRating.Get()
	if !ok {
		winningTargetRating = metasignal.HIGH
	}

	f.activity.Send(winningActivity)
	f.targetRating.Send(winningTargetRating)
	f.data.Send(value)

	snap := telemetry.Snapshot{
		Index:        f.loopCount,
		Source:       f.parent.Path,
		Activity:     winningActivity.Float32(),
		TargetRating: winningTargetRating.Float32(),
		Data: []telemetry.NamedValue{
			{Name: "winner", Value: telemetry.String(in.name)},
			{Name: "value", Value: telemetry.ToTaggedValue(value)},
		},
	}.WithActiveTime(time.Since(start))
	f.parent.TCP.Send(snap)
}

func (f *MaximumFusion[D]) advance(start time.Time) {
	elapsed := time.Since(start)
	if elapsed < f.cycleTime {
		time.Sleep(f.cycleTime - elapsed)
	} else {
		diag.Warnf("fusion %q running behind schedule, cycle %s, elapsed %s",
			f.parent.Path, f.cycleTime, elapsed)
	}
}
