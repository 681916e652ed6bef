// Package resultstore implements the random-access binary results file of
// spec §4.2: an append-only stream of fixed-width per-period blocks bracketed
// by a prologue and epilogue, readable by arithmetic seek rather than scan.
// The low-level word encoding follows the same little-endian
// encoding/binary idiom as the hotstart codec, adapted from the teacher's
// forcing/io.go writeBil32 pattern.
package resultstore

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/maseology/swmmcore/project"
)

const magic = "SWMMCORE-RESULTS1"

// StoreVersion is written into the prologue for forward-compatible readers.
const StoreVersion int32 = 1

type writer struct {
	w   io.Writer
	n   int64 // bytes written, tracked for the size guard and epilogue offsets
	err project.ErrCode
}

func (wr *writer) i32(v int32) {
	if wr.err != project.ErrNone {
		return
	}
	if err := binary.Write(wr.w, binary.LittleEndian, v); err != nil {
		wr.err = project.ErrOutWrite
		return
	}
	wr.n += 4
}

func (wr *writer) f32(v float64) {
	if wr.err != project.ErrNone {
		return
	}
	if err := binary.Write(wr.w, binary.LittleEndian, float32(v)); err != nil {
		wr.err = project.ErrOutWrite
		return
	}
	wr.n += 4
}

func (wr *writer) f64(v float64) {
	if wr.err != project.ErrNone {
		return
	}
	if err := binary.Write(wr.w, binary.LittleEndian, v); err != nil {
		wr.err = project.ErrOutWrite
		return
	}
	wr.n += 8
}

// str writes a length-prefixed (i32) ASCII string — object IDs and the
// magic are the only variable-length fields in the store.
func (wr *writer) str(s string) {
	wr.i32(int32(len(s)))
	if wr.err != project.ErrNone {
		return
	}
	if _, err := io.WriteString(wr.w, s); err != nil {
		wr.err = project.ErrOutWrite
		return
	}
	wr.n += int64(len(s))
}

type reader struct {
	r   io.Reader
	err project.ErrCode
}

func (rd *reader) i32() int32 {
	if rd.err != project.ErrNone {
		return 0
	}
	var v int32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		rd.err = project.ErrOutFile
	}
	return v
}

func (rd *reader) f32() float32 {
	if rd.err != project.ErrNone {
		return 0
	}
	var v float32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		rd.err = project.ErrOutFile
		return 0
	}
	if math.IsNaN(float64(v)) {
		rd.err = project.ErrOutFile
	}
	return v
}

func (rd *reader) f64() float64 {
	if rd.err != project.ErrNone {
		return 0
	}
	var v float64
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		rd.err = project.ErrOutFile
		return 0
	}
	if math.IsNaN(v) {
		rd.err = project.ErrOutFile
	}
	return v
}

func (rd *reader) str() string {
	n := rd.i32()
	if rd.err != project.ErrNone || n < 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		rd.err = project.ErrOutFile
		return ""
	}
	return string(buf)
}
