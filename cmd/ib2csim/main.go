// Command ib2csim runs one of the velocity-control and battery/lightbulb
// demo behaviour trees, chosen by -scenario, and prints the telemetry
// stream it produces, serving
// the same role the teacher's cmd/boardtest and cmd/uart-test binaries
// play for the hardware stack: an end-to-end smoke test a developer runs
// by hand rather than a unit test.
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"

	"ib2c/groupcfg"
	"ib2c/ib2c"
	"ib2c/internal/demo"
	"ib2c/port"
	"ib2c/quantity"
	"ib2c/telemetry"
	"ib2c/x/strx"
	"ib2c/x/timex"
)

func main() {
	telemetryAddr := flag.String("telemetry", "", "telemetry server listen address")
	scenario := flag.String("scenario", "velocity", "demo scenario to run: velocity or battery")
	obstacleHz := flag.Uint("obstacle-rate", 10, "obstacle-sensor simulation rate, in Hz, for the velocity scenario")
	groupCfgPath := flag.String("groupcfg", "", "optional JSON file of parameter overrides for the velocity scenario (min_distance, cruise_velocity)")
	flag.Parse()

	addr := strx.Coalesce(*telemetryAddr, telemetry.DefaultAddr)

	if *groupCfgPath != "" {
		loadVelocityOverrides(*groupCfgPath)
	}

	root := ib2c.Root("ib2csim")
	root.TCP.Start(addr)

	switch *scenario {
	case "velocity":
		runVelocityScenario(root, timex.PeriodFromHz(uint32(*obstacleHz)))
	case "battery":
		runBatteryScenario(root)
	default:
		log.Fatalf("unknown scenario %q (want velocity or battery)", *scenario)
	}

	go dumpTelemetry(addr)

	select {}
}

func runVelocityScenario(root ib2c.Parent, tickPeriod uint64) {
	controlSystem := ib2c.NewGroup("ControlSystem", demo.DefaultCycleTime, root, demo.NewControlSystem)

	front := port.NewSendPort[quantity.Quantity]()
	left := port.NewSendPort[quantity.Quantity]()
	right := port.NewSendPort[quantity.Quantity]()
	mustConnect(controlSystem.InFrontDistanceSensor.ConnectToSource(front.Port()))
	mustConnect(controlSystem.InLeftDistanceSensor.ConnectToSource(left.Port()))
	mustConnect(controlSystem.InRightDistanceSensor.ConnectToSource(right.Port()))

	front.Send(quantity.Of(5.0, "m"))
	left.Send(quantity.Of(5.0, "m"))
	right.Send(quantity.Of(5.0, "m"))

	go func() {
		distance := 5.0
		for range time.Tick(time.Duration(tickPeriod)) {
			distance -= 0.1
			if distance < 0 {
				distance = 5.0
			}
			front.Send(quantity.Of(distance, "m"))
		}
	}()
}

func runBatteryScenario(root ib2c.Parent) {
	ib2c.NewGroup("BatterySystem", demo.DefaultCycleTime, root, demo.NewBatterySystem)
}

// loadVelocityOverrides reads path as a groupcfg document and installs it
// as demo.VelocityOverrides, letting a host reconfigure the velocity
// scenario's braking distance and cruise speed without a rebuild.
func loadVelocityOverrides(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("ib2csim: reading groupcfg %s: %v", path, err)
	}
	overrides, err := groupcfg.Load(raw)
	if err != nil {
		log.Fatalf("ib2csim: parsing groupcfg %s: %v", path, err)
	}
	if err := groupcfg.RequireKnownKeys(overrides, "min_distance", "cruise_velocity"); err != nil {
		log.Fatalf("ib2csim: groupcfg %s: %v", path, err)
	}
	demo.VelocityOverrides = overrides
}

func mustConnect(err error) {
	if err != nil {
		log.Fatalf("ib2csim: wiring error: %v", err)
	}
}

// dumpTelemetry dials the telemetry server and prints every decoded
// snapshot, mirroring what an external monitoring tool does against the
// wire protocol in spec.md §6.
func dumpTelemetry(addr string) {
	time.Sleep(100 * time.Millisecond)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Printf("ib2csim: telemetry dial failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		snap, err := readFrame(conn)
		if err != nil {
			if err != io.EOF {
				log.Printf("ib2csim: telemetry read failed: %v", err)
			}
			return
		}
		fmt.Printf("[%s] #%d activity=%.2f target=%.2f stim=%.2f inhib=%.2f data=%v\n",
			snap.Source, snap.Index, snap.Activity, snap.TargetRating,
			snap.Stimulation, snap.Inhibition, snap.Data)
	}
}

func readFrame(conn net.Conn) (telemetry.Snapshot, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(conn, lenPrefix[:]); err != nil {
		return telemetry.Snapshot{}, err
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(conn, body); err != nil {
		return telemetry.Snapshot{}, err
	}
	var snap telemetry.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return telemetry.Snapshot{}, err
	}
	return snap, nil
}
