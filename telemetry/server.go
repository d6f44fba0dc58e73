package telemetry

import (
	"encoding/binary"
	"encoding/json"
	"net"
	"sync"
	"time"

	"ib2c/diag"
)

// DefaultAddr is the loopback address and port the telemetry server listens
// on (spec.md §6).
const DefaultAddr = "127.0.0.1:13337"

// Server is the single-consumer TCP telemetry sink described in spec.md
// §4.8. One instance is created by the root group and cloned (by value copy
// of the handle, like the teacher's bus.Connection / TcpServer.Clone) into
// every module, fusion and group below it. Send never blocks: it is a
// try-lock-and-overwrite onto a single slot, so a slow or absent monitor
// never throttles a producer's cycle.
type Server struct {
	mu   sync.Mutex
	slot *Snapshot // nil when empty
}

// NewServer constructs an unstarted telemetry server. Call Start to begin
// listening; Send is safe to call before Start (snapshots are simply
// dropped until a consumer shows up, same as rust_ib2c's behaviour before
// the first client connects).
func NewServer() *Server {
	return &Server{}
}

// Send deposits a snapshot into the single slot, overwriting whatever was
// there. If the slot is currently locked by the drain loop reading it out,
// Send gives up immediately rather than blocking (spec.md §4.8, §8 P7).
func (s *Server) Send(snap Snapshot) {
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()
	v := snap
	s.slot = &v
}

func (s *Server) take() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slot == nil {
		return Snapshot{}, false
	}
	v := *s.slot
	s.slot = nil
	return v, true
}

// Start launches the accept loop and the drain loop as background
// goroutines and returns immediately. It never returns an error: bind
// failures are fatal to the monitoring side-channel only, and are reported
// via diag the same way the teacher reports non-fatal device failures.
func (s *Server) Start(addr string) {
	if addr == "" {
		addr = DefaultAddr
	}
	go s.serve(addr)
}

func (s *Server) serve(addr string) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		diag.Warnf("telemetry: failed to listen on %s: %v", addr, err)
		return
	}
	diag.Infof("telemetry: listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			diag.Warnf("telemetry: accept failed: %v", err)
			continue
		}
		diag.Infof("telemetry: client connected: %s", conn.RemoteAddr())
		s.drain(conn)
		// drain returns once the connection has failed; loop back to accept
		// exactly as spec.md §4.8 and §7 require.
	}
}

// drain polls the slot and writes framed JSON to conn until a write fails,
// at which point it closes the connection and returns so serve can accept a
// replacement client. It never retries a dropped snapshot (spec.md §7).
func (s *Server) drain(conn net.Conn) {
	defer conn.Close()
	for {
		snap, ok := s.take()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		if err := writeFrame(conn, snap); err != nil {
			diag.Warnf("telemetry: connection error, searching for new connection: %v", err)
			return
		}
	}
}

func writeFrame(conn net.Conn, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(body)))
	if _, err := conn.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err = conn.Write(body)
	return err
}
