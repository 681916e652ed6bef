package runoffstep

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/maseology/swmmcore/project"
	"github.com/maseology/swmmcore/subcatch"
)

const magic = "SWMM5-RUNOFF"

// MaxSubcatchResults is the fixed count of per-subcatchment fields stored
// per step ahead of the per-pollutant washoff values (spec §6): snow depth,
// evap loss, infiltration loss, runoff rate, and one runoff-quality slot
// that is replaced, not added to, when nPollut > 0 (hence "+nPollut-1").
const MaxSubcatchResults = 5

// Header is the runoff interface file's fixed preamble (spec §6).
type Header struct {
	NSubcatch        int32
	NPollut          int32
	FlowUnits        int32
	ReservedStepCount int32
}

type writer struct {
	w   io.Writer
	err project.ErrCode
}

func (wr *writer) i32(v int32) {
	if wr.err != project.ErrNone {
		return
	}
	if err := binary.Write(wr.w, binary.LittleEndian, v); err != nil {
		wr.err = project.ErrOutWrite // spec §6 has no runoff-file-specific write code
	}
}

func (wr *writer) f32(v float64) {
	if wr.err != project.ErrNone {
		return
	}
	if err := binary.Write(wr.w, binary.LittleEndian, float32(v)); err != nil {
		wr.err = project.ErrOutWrite
	}
}

func (wr *writer) str(s string) {
	if wr.err != project.ErrNone {
		return
	}
	if _, err := io.WriteString(wr.w, s); err != nil {
		wr.err = project.ErrOutWrite
	}
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
		if err == io.EOF {
			rd.err = project.ErrRunoffFileEnd
		} else {
			rd.err = project.ErrRunoffFileRead
		}
	}
	return v
}

func (rd *reader) f32() float32 {
	if rd.err != project.ErrNone {
		return 0
	}
	var v float32
	if err := binary.Read(rd.r, binary.LittleEndian, &v); err != nil {
		if err == io.EOF {
			rd.err = project.ErrRunoffFileEnd
		} else {
			rd.err = project.ErrRunoffFileRead
		}
		return 0
	}
	if math.IsNaN(float64(v)) {
		rd.err = project.ErrRunoffFileRead
	}
	return v
}

// WriteHeader writes the runoff interface file preamble (spec §6): magic,
// then nSubcatch, nPollut, flowUnits, reservedStepCount as 4xi32.
func WriteHeader(w io.Writer, h Header) project.ErrCode {
	wr := &writer{w: w}
	wr.str(magic)
	wr.i32(h.NSubcatch)
	wr.i32(h.NPollut)
	wr.i32(h.FlowUnits)
	wr.i32(h.ReservedStepCount)
	return wr.err
}

// ReadHeader reads and validates the runoff interface file preamble
// against the current project's catalog sizes, rejecting a mismatch as
// RUNOFF_FILE_FORMAT (spec §6, §7).
func ReadHeader(r io.Reader, wantNSubcatch, wantNPollut int) (Header, project.ErrCode) {
	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, project.ErrRunoffFileOpen
	}
	if string(buf) != magic {
		return Header{}, project.ErrRunoffFileFormat
	}
	rd := &reader{r: r}
	h := Header{
		NSubcatch:        rd.i32(),
		NPollut:          rd.i32(),
		FlowUnits:        rd.i32(),
		ReservedStepCount: rd.i32(),
	}
	if rd.err != project.ErrNone {
		return h, rd.err
	}
	if int(h.NSubcatch) != wantNSubcatch || int(h.NPollut) != wantNPollut {
		return h, project.ErrRunoffFileFormat
	}
	return h, project.ErrNone
}

// WriteStep appends one recorded step (spec §6): f32 tStep followed by
// nSubcatch x (MaxSubcatchResults+nPollut-1) x f32 values in user units.
// valuesOf must return exactly that many values per subcatchment, already
// converted from internal units.
func WriteStep(w io.Writer, tStep float64, subs []*subcatch.Subcatchment, nPollut int, valuesOf func(*subcatch.Subcatchment) []float64) project.ErrCode {
	wr := &writer{w: w}
	wr.f32(tStep)
	n := MaxSubcatchResults + nPollut - 1
	for _, s := range subs {
		vals := valuesOf(s)
		for i := 0; i < n; i++ {
			if i < len(vals) {
				wr.f32(vals[i])
			} else {
				wr.f32(0)
			}
		}
		if wr.err != project.ErrNone {
			return wr.err
		}
	}
	return wr.err
}

// ReadStep reads one recorded step back, invoking apply with each
// subcatchment's restored value vector so the caller can replace its
// dynamic fields (spec §4.5 "read one record and replace all subcatchment
// dynamic fields, converting from user units back to internal").
func ReadStep(r io.Reader, subs []*subcatch.Subcatchment, nPollut int, apply func(*subcatch.Subcatchment, []float64)) (tStep float64, code project.ErrCode) {
	rd := &reader{r: r}
	tStep = float64(rd.f32())
	n := MaxSubcatchResults + nPollut - 1
	for _, s := range subs {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = float64(rd.f32())
		}
		if rd.err != project.ErrNone {
			return tStep, rd.err
		}
		apply(s, vals)
	}
	return tStep, project.ErrNone
}
