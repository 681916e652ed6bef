package resultstore

import "github.com/maseology/swmmcore/project"

// Epilogue is the trailing fixed-size region (spec §4.2): offsets of the
// three prior regions, the number of periods written, the terminal error
// code (written even on a fatal abort, per spec §7, so downstream readers
// can detect a partial run), and a trailing copy of the magic.
type Epilogue struct {
	PrologueOffset    int64
	PeriodBlockOffset int64
	EpilogueOffset    int64
	NPeriods          int32
	ErrorCode         int32
}

// EpilogueSize is the fixed byte width of the epilogue region, used by
// random-access readers to locate it from the end of the file: five i32
// fields (20 bytes) plus a length-prefixed copy of the magic.
const EpilogueSize = int64(5*4 + 4 + len(magic))

func writeEpilogue(wr *writer, e Epilogue) {
	wr.i32(int32(e.PrologueOffset))
	wr.i32(int32(e.PeriodBlockOffset))
	wr.i32(int32(e.EpilogueOffset))
	wr.i32(e.NPeriods)
	wr.i32(e.ErrorCode)
	wr.str(magic)
}

func readEpilogue(rd *reader) (Epilogue, project.ErrCode) {
	var e Epilogue
	e.PrologueOffset = int64(rd.i32())
	e.PeriodBlockOffset = int64(rd.i32())
	e.EpilogueOffset = int64(rd.i32())
	e.NPeriods = rd.i32()
	e.ErrorCode = rd.i32()
	got := rd.str()
	if got != magic {
		return e, project.ErrOutFile
	}
	return e, rd.err
}
