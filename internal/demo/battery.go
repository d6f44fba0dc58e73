package demo

import (
	"ib2c/ib2c"
	"ib2c/metasignal"
	"ib2c/port"
	"ib2c/quantity"
)

const (
	unitVolts  = "V"
	unitAmps   = "A"
	unitOhms   = "ohm"
	unitWatts  = "W"
	unitJoules = "J"
)

// LightBulb draws whatever current/voltage Battery supplies through its
// fixed internal resistance and reports its own power draw, rating
// itself HIGH only while it is meaningfully lit (ported from the
// LightBulb module in testing/src/main.rs).
type LightBulb struct {
	ib2c.Standard

	InVoltage *port.ReceivePort[quantity.Quantity]
	InCurrent *port.ReceivePort[quantity.Quantity]

	OutPower      port.SendPort[quantity.Quantity]
	OutResistance port.SendPort[quantity.Quantity]

	internalResistance quantity.Quantity
	lastPower          quantity.Quantity
}

// NewLightBulb constructs a LightBulb with a fixed 20 ohm internal
// resistance, matching the original demo.
func NewLightBulb() *LightBulb {
	return &LightBulb{
		Standard:           ib2c.NewStandard(),
		InVoltage:          port.NewReceivePort[quantity.Quantity](),
		InCurrent:          port.NewReceivePort[quantity.Quantity](),
		OutPower:           port.NewSendPort[quantity.Quantity](),
		OutResistance:      port.NewSendPort[quantity.Quantity](),
		internalResistance: quantity.Of(20.0, unitOhms),
	}
}

func (m *LightBulb) Transfere() {
	voltage := m.InVoltage.GetOrDefault()
	current := m.InCurrent.GetOrDefault()

	power := quantity.Of(voltage.Value*current.Value, unitWatts)
	m.lastPower = power

	m.OutPower.Send(power)
	m.OutResistance.Send(m.internalResistance)
}

func (m *LightBulb) TargetRating() metasignal.MetaSignal {
	if m.lastPower.Value > 1.0 {
		return metasignal.HIGH
	}
	return metasignal.LOW
}

// Battery discharges into whatever resistance LightBulb reports, tracking
// remaining capacity and cutting output to zero once exhausted (ported
// from the Battery module in testing/src/main.rs). Its stimulation input
// is wired from LightBulb's activity in the demo, so the battery's own
// potential tracks how hard the bulb is asking to be lit.
type Battery struct {
	ib2c.Standard

	InResistance *port.ReceivePort[quantity.Quantity]

	OutVoltage port.SendPort[quantity.Quantity]
	OutCurrent port.SendPort[quantity.Quantity]

	remainingCapacity quantity.Quantity // joules
	voltage           quantity.Quantity
}

// NewBattery constructs a Battery with a 20 J initial capacity and a
// fixed 9 V terminal voltage, matching the original demo.
func NewBattery() *Battery {
	return &Battery{
		Standard:          ib2c.NewStandard(),
		InResistance:      port.NewReceivePort[quantity.Quantity](),
		OutVoltage:        port.NewSendPort[quantity.Quantity](),
		OutCurrent:        port.NewSendPort[quantity.Quantity](),
		remainingCapacity: quantity.Of(20.0, unitJoules),
		voltage:           quantity.Of(9.0, unitVolts),
	}
}

func (m *Battery) Transfere() {
	resistance, ok := m.InResistance.Get()
	if !ok {
		return
	}
	if resistance.Value == 0 {
		return
	}

	current := m.voltage.Value / resistance.Value
	deltaSeconds := m.DeltaTime().Seconds()
	usedEnergy := current * m.voltage.Value * deltaSeconds
	m.remainingCapacity.Value -= usedEnergy

	if m.remainingCapacity.Value < 0 {
		m.remainingCapacity.Value = 0
		m.OutVoltage.Send(quantity.Of(0, unitVolts))
		m.OutCurrent.Send(quantity.Of(0, unitAmps))
		return
	}
	m.OutVoltage.Send(m.voltage)
	m.OutCurrent.Send(quantity.Of(current, unitAmps))
}

func (m *Battery) TargetRating() metasignal.MetaSignal {
	if m.remainingCapacity.Value > 0.1 {
		return metasignal.HIGH
	}
	return metasignal.LOW
}
