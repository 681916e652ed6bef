package project

// ErrCode is the sticky project-wide error code described in spec §7.
// Zero means no error. Once set it is never cleared within a run; every
// core operation checks it at entry and short-circuits if non-zero.
type ErrCode int

// Error codes relevant to the simulation core (spec §6).
const (
	ErrNone ErrCode = iota
	ErrHotstartFileOpen
	ErrHotstartFileFormat
	ErrHotstartFileRead
	ErrOutWrite
	ErrOutFile
	ErrFileSize
	ErrMemory
	ErrODESolver
	ErrRunoffFileOpen
	ErrRunoffFileFormat
	ErrRunoffFileEnd
	ErrRunoffFileRead
	ErrTimestep
	ErrDivider
	ErrOutfall
	ErrMultiOutlet
	ErrDummyLink
	ErrNoOutlets
	ErrSlope
	ErrRegulator
)

var errText = map[ErrCode]string{
	ErrNone:               "no error",
	ErrHotstartFileOpen:   "cannot open hotstart file",
	ErrHotstartFileFormat: "hotstart file format is incompatible with this project",
	ErrHotstartFileRead:   "error reading hotstart file (NaN or short read)",
	ErrOutWrite:           "error writing to results file",
	ErrOutFile:            "error opening results file",
	ErrFileSize:           "projected results file exceeds the maximum addressable size",
	ErrMemory:             "out of memory",
	ErrODESolver:          "sub-area ODE integrator failed to converge",
	ErrRunoffFileOpen:     "cannot open runoff interface file",
	ErrRunoffFileFormat:   "runoff interface file format is incompatible with this project",
	ErrRunoffFileEnd:      "unexpected end of runoff interface file",
	ErrRunoffFileRead:     "error reading runoff interface file",
	ErrTimestep:           "illegal time step",
	ErrDivider:            "divider node has more than 2 outgoing links",
	ErrOutfall:            "outfall node has an outgoing link",
	ErrMultiOutlet:        "node has more than one outgoing link",
	ErrDummyLink:          "dummy conduit given non-zero slope",
	ErrNoOutlets:          "network has no outfalls",
	ErrSlope:              "conduit has negative slope",
	ErrRegulator:          "regulator link does not originate at a storage node",
}

func (e ErrCode) Error() string {
	if s, ok := errText[e]; ok {
		return s
	}
	return "unknown error"
}

// Fatal reports whether the code belongs to the "resource" class (§7):
// memory exhaustion and the results-file size cap are always fatal.
func (e ErrCode) Fatal() bool {
	return e == ErrMemory || e == ErrFileSize
}
