package resultstore

import (
	"io"

	"github.com/maseology/swmmcore/project"
)

// Writer appends period blocks to a results file opened for writing.
// Create writes the prologue immediately; Close writes the epilogue.
type Writer struct {
	w             io.Writer
	Prologue      Prologue
	bytesPerBlock int64
	nPeriods      int32
	prologueBytes int64
	err           project.ErrCode
}

// Create opens a results file for writing, running the size guard (spec
// §4.2) before any period is written: the projected total size (prologue +
// periodBlock * expectedPeriods) must not exceed maxAddressableBytes,
// matching the same int32-offset limit the epilogue's offsets are stored
// in (see Epilogue).
func Create(w io.Writer, p Prologue, expectedPeriods int, maxAddressableBytes int64) (*Writer, project.ErrCode) {
	wr := &writer{w: w}
	writePrologue(wr, p)
	if wr.err != project.ErrNone {
		return nil, wr.err
	}
	bpp := BytesPerPeriod(p)
	projected := wr.n + bpp*int64(expectedPeriods) + EpilogueSize
	if projected > maxAddressableBytes {
		return nil, project.ErrFileSize
	}
	return &Writer{w: w, Prologue: p, bytesPerBlock: bpp, prologueBytes: wr.n}, project.ErrNone
}

// WritePeriod appends one period block, returning project.ErrNone on
// success. Once an error is returned the Writer is unusable for further
// periods; the caller should still call Close to flush the epilogue with
// the terminal error code (spec §7 "results epilogue is still written").
func (s *Writer) WritePeriod(r PeriodResults) project.ErrCode {
	if s.err != project.ErrNone {
		return s.err
	}
	wr := &writer{w: s.w}
	writePeriod(wr, r)
	s.err = wr.err
	if s.err == project.ErrNone {
		s.nPeriods++
	}
	return s.err
}

// Close writes the epilogue (spec §4.2), carrying the run's terminal error
// code so a reader can detect a partial run even after a fatal abort.
func (s *Writer) Close(terminalCode project.ErrCode) project.ErrCode {
	periodBlockOffset := s.prologueBytes
	epilogueOffset := periodBlockOffset + s.bytesPerBlock*int64(s.nPeriods)
	wr := &writer{w: s.w}
	writeEpilogue(wr, Epilogue{
		PrologueOffset:    0,
		PeriodBlockOffset: periodBlockOffset,
		EpilogueOffset:    epilogueOffset,
		NPeriods:          s.nPeriods,
		ErrorCode:         int32(terminalCode),
	})
	if wr.err != project.ErrNone {
		return wr.err
	}
	return project.ErrNone
}

// Reader provides random-access reads over an already-written results
// file. Positions are computed arithmetically from the prologue's
// object-class sizes and the epilogue's recorded offsets — no scan.
type Reader struct {
	ra                io.ReaderAt
	Prologue          Prologue
	Epilogue          Epilogue
	periodBlockOffset int64
	bytesPerBlock     int64
}

// Open parses the prologue (from the front) and epilogue (from the
// declared end-of-file offset), and prepares for random-access period
// reads. fileSize is the total byte length of the underlying file.
func Open(ra io.ReaderAt, fileSize int64) (*Reader, project.ErrCode) {
	prSec := io.NewSectionReader(ra, 0, fileSize)
	rd := &reader{r: prSec}
	p, code := readPrologue(rd)
	if code != project.ErrNone {
		return nil, code
	}
	bpp := BytesPerPeriod(p)

	epSec := io.NewSectionReader(ra, fileSize-EpilogueSize, EpilogueSize)
	erd := &reader{r: epSec}
	e, code := readEpilogue(erd)
	if code != project.ErrNone {
		return nil, code
	}

	return &Reader{
		ra:                ra,
		Prologue:          p,
		Epilogue:          e,
		periodBlockOffset: e.PeriodBlockOffset,
		bytesPerBlock:     bpp,
	}, project.ErrNone
}

func (s *Reader) periodOffset(period int) int64 {
	return s.periodBlockOffset + int64(period)*s.bytesPerBlock
}

// ReadDateTime reads only the leading f64 of a period block (spec §4.2
// readDateTime(period)).
func (s *Reader) ReadDateTime(period int) (float64, project.ErrCode) {
	sec := io.NewSectionReader(s.ra, s.periodOffset(period), 8)
	rd := &reader{r: sec}
	return rd.f64(), rd.err
}

// ReadSubcatchResults reads one reported subcatchment's result row for a
// period (spec §4.2 readSubcatchResults(period, reportedIndex)), seeking
// past the leading date and any preceding subcatchment rows.
func (s *Reader) ReadSubcatchResults(period, reportedIndex int) ([]float64, project.ErrCode) {
	nVars := s.Prologue.NSubcatchResults()
	off := s.periodOffset(period) + 8 + int64(reportedIndex*nVars)*4
	return s.readRow(off, nVars)
}

// ReadNodeResults reads one reported node's result row for a period,
// seeking past the date and the full subcatchment block.
func (s *Reader) ReadNodeResults(period, reportedIndex int) ([]float64, project.ErrCode) {
	nSubVars := s.Prologue.NSubcatchResults()
	nVars := s.Prologue.NNodeResults()
	off := s.periodOffset(period) + 8 +
		int64(len(s.Prologue.ReportedSubcatch)*nSubVars)*4 +
		int64(reportedIndex*nVars)*4
	return s.readRow(off, nVars)
}

// ReadLinkResults reads one reported link's result row for a period,
// seeking past the date, the subcatchment block, and the node block.
func (s *Reader) ReadLinkResults(period, reportedIndex int) ([]float64, project.ErrCode) {
	nSubVars := s.Prologue.NSubcatchResults()
	nNodVars := s.Prologue.NNodeResults()
	nVars := s.Prologue.NLinkResults()
	off := s.periodOffset(period) + 8 +
		int64(len(s.Prologue.ReportedSubcatch)*nSubVars)*4 +
		int64(len(s.Prologue.ReportedNodes)*nNodVars)*4 +
		int64(reportedIndex*nVars)*4
	return s.readRow(off, nVars)
}

func (s *Reader) readRow(off int64, nVars int) ([]float64, project.ErrCode) {
	sec := io.NewSectionReader(s.ra, off, int64(nVars)*4)
	rd := &reader{r: sec}
	out := make([]float64, nVars)
	for i := range out {
		out[i] = float64(rd.f32())
	}
	return out, rd.err
}
