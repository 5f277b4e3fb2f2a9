package bus

// Card is a slot peripheral occupying the $Cs00-$CsFF ROM window for its
// slot s (spec §4.D, §4.I). Access dispatches a single byte access into
// the card; returning handled false lets the bus fall back to floating
// bus behaviour (open bus reads as the vapor value).
type Card interface {
	Access(addr uint16, value *byte, write bool) (handled bool)
}

// VideoNotifier lets out-of-band writers (DMA from a card trap) tell the
// video renderer that a line possibly changed without going through the
// CPU write path (spec §4.D, §4.I).
type VideoNotifier interface {
	OOBWrite(addr uint16, size int)
}

// SpeakerSink receives a cycle-stamped speaker toggle from the $C030
// access (spec §4.D, §4.G).
type SpeakerSink interface {
	Click(cycle uint64)
}

// VaporSource supplies the "vapor read" value for an access to an
// undefined soft-switch address (spec §7 BusError, §9 Open Questions).
type VaporSource interface {
	VaporRead() byte
}

// CycleSource reports the CPU's current total cycle count, used for
// paddle trigger timing.
type CycleSource interface {
	TotalCycle() uint64
}
