package demo

import (
	"time"

	"ib2c/ib2c"
)

// BatterySystem is the standalone battery/lightbulb demo from
// testing/src/main.rs: it has no characteristic module of its own, since
// the original never designates one — it exists purely to show a
// feedback loop (the bulb's activity stimulates the battery) running to
// completion as capacity drains.
type BatterySystem struct {
	ib2c.GroupMeta
}

// NewBatterySystem constructs an unwired BatterySystem payload.
func NewBatterySystem() *BatterySystem {
	return &BatterySystem{GroupMeta: ib2c.NewGroupMeta()}
}

func (g *BatterySystem) Init(cycleTime time.Duration, parent *ib2c.Parent) {
	battery := ib2c.NewModule("Battery", cycleTime, *parent, NewBattery)
	lightBulb := ib2c.NewModule("LightBulb", cycleTime, *parent, NewLightBulb)

	must(battery.StimulationPort().ConnectToSource(lightBulb.ActivityPort().Port()))
	must(battery.InResistance.ConnectToSource(lightBulb.OutResistance.Port()))
	must(lightBulb.InVoltage.ConnectToSource(battery.OutVoltage.Port()))
	must(lightBulb.InCurrent.ConnectToSource(battery.OutCurrent.Port()))

	battery.Spawn()
	lightBulb.Spawn()
}
