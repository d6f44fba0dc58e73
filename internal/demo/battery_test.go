package demo

import (
	"testing"
	"time"

	"ib2c/metasignal"
	"ib2c/port"
	"ib2c/quantity"
)

func quantityOf(v float64, unit string) quantity.Quantity { return quantity.Of(v, unit) }

func wireVoltageAndCurrent(t *testing.T, bulb *LightBulb, volts, amps float64) (port.SendPort[quantity.Quantity], port.SendPort[quantity.Quantity]) {
	t.Helper()
	voltageSrc := port.NewSendPort[quantity.Quantity]()
	currentSrc := port.NewSendPort[quantity.Quantity]()
	if err := bulb.InVoltage.ConnectToSource(voltageSrc.Port()); err != nil {
		t.Fatalf("connect voltage: %v", err)
	}
	if err := bulb.InCurrent.ConnectToSource(currentSrc.Port()); err != nil {
		t.Fatalf("connect current: %v", err)
	}
	voltageSrc.Send(quantityOf(volts, unitVolts))
	currentSrc.Send(quantityOf(amps, unitAmps))
	bulb.InVoltage.Update()
	bulb.InCurrent.Update()
	return voltageSrc, currentSrc
}

func wireResistance(t *testing.T, battery *Battery, ohms float64) {
	t.Helper()
	resistanceSrc := port.NewSendPort[quantity.Quantity]()
	if err := battery.InResistance.ConnectToSource(resistanceSrc.Port()); err != nil {
		t.Fatalf("connect resistance: %v", err)
	}
	resistanceSrc.Send(quantityOf(ohms, unitOhms))
	battery.InResistance.Update()
}

// TestLightBulbRatesItselfByPowerDraw mirrors the LightBulb behaviour in
// testing/src/main.rs: it rates itself HIGH only once its computed power
// draw exceeds 1 watt.
func TestLightBulbRatesItselfByPowerDraw(t *testing.T) {
	bulb := NewLightBulb()

	voltageSrc, currentSrc := wireVoltageAndCurrent(t, bulb, 9.0, 0.5)
	bulb.Transfere()
	if got := bulb.TargetRating(); got != metasignal.HIGH {
		t.Fatalf("9V * 0.5A = 4.5W should rate HIGH, got %v", got)
	}

	voltageSrc.Send(quantityOf(0.1, "V"))
	currentSrc.Send(quantityOf(0.1, "A"))
	bulb.InVoltage.Update()
	bulb.InCurrent.Update()
	bulb.Transfere()
	if got := bulb.TargetRating(); got != metasignal.LOW {
		t.Fatalf("0.1V * 0.1A = 0.01W should rate LOW, got %v", got)
	}
}

func TestBatteryDischargesOverTime(t *testing.T) {
	battery := NewBattery()
	wireResistance(t, battery, 100.0)

	battery.SetDeltaTime(1 * time.Second)
	battery.Transfere()

	voltage, ok := battery.OutVoltage.Get()
	if !ok || voltage.Value != 9.0 {
		t.Fatalf("expected fresh battery to hold 9V under load, got (%v,%v)", voltage, ok)
	}
	// 9 V across 100 ohm for 1 s draws 0.09 A and uses 0.81 J.
	if battery.remainingCapacity.Value >= 20.0 {
		t.Fatalf("expected capacity below the initial 20 J after 1 s of load, got %v", battery.remainingCapacity)
	}
	if battery.TargetRating() != metasignal.HIGH {
		t.Fatalf("expected a fresh battery to rate itself HIGH")
	}
}
