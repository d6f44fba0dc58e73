package ib2c

import (
	"ib2c/telemetry"
)

// NodeKind discriminates the three node types a running graph is built
// from, mirroring the original implementation's Structure/ModuleType record
// (rust_ib2c/src/structure.rs) used by the out-of-scope GUI simulator to
// draw the graph (spec.md §1, SPEC_FULL.md §5.5).
type NodeKind uint8

const (
	KindModule NodeKind = iota
	KindGroup
	KindMaximumFusion
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindGroup:
		return "group"
	case KindMaximumFusion:
		return "maximum_fusion"
	default:
		return "unknown"
	}
}

// Parent carries the hierarchical path prefix and the shared telemetry
// sink every module, fusion and group below the root is constructed with
// (spec.md §3 "Graph identity", §4.8). Cloning a Parent (it is passed by
// value) produces an additional co-owner of the same telemetry server, the
// same way the teacher's bus.Connection is shared by every service that
// dials into one Bus.
type Parent struct {
	Path string
	TCP  *telemetry.Server
}

// Root constructs the Parent used by the top-level (main) group: it owns a
// fresh telemetry server rather than inheriting one (spec.md §4.6 "the
// main/root group is special only in that it instantiates the telemetry
// server").
func Root(name string) Parent {
	return Parent{Path: name, TCP: telemetry.NewServer()}
}

// child builds the Parent passed to a newly constructed module/fusion/group,
// extending the path and sharing the telemetry sink.
func (p Parent) child(name string) Parent {
	return Parent{Path: p.Path + "/" + name, TCP: p.TCP}
}

// NodeDescriptor is the Structure-equivalent summary of one running node,
// supplementing the original's graph-description type that spec.md's
// distillation dropped (SPEC_FULL.md §5.5). It carries enough for an
// external tool (the out-of-scope GUI) to draw the tree without the runtime
// needing to track anything beyond what Parent already has.
type NodeDescriptor struct {
	Path string
	Kind NodeKind
}

// Describe returns this node's NodeDescriptor.
func (p Parent) Describe(kind NodeKind) NodeDescriptor {
	return NodeDescriptor{Path: p.Path, Kind: kind}
}
