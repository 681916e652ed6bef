package hotstart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maseology/swmmcore/link"
	"github.com/maseology/swmmcore/node"
	"github.com/maseology/swmmcore/project"
	"github.com/maseology/swmmcore/subcatch"
)

func fixtureCatalog() Catalog {
	s := &subcatch.Subcatchment{ID: "S1", Area: 1000}
	s.SubAreas[0].Depth = 0.01
	s.SubAreas[1].Depth = 0.02
	s.SubAreas[2].Depth = 0.0
	s.NewRunoff = 0.5

	n := &node.Node{ID: "J1", Type: node.Junction, NewDepth: 1.5, LateralInflow: 0.25}
	l := &link.Link{ID: "C1", Type: link.Conduit, NewFlow: 3.0, NewDepth: 0.8, Setting: 1.0}

	return Catalog{
		Subcatchments: []*subcatch.Subcatchment{s},
		Nodes:         []*node.Node{n},
		Links:         []*link.Link{l},
		HasGW:         []bool{false},
		HasSnow:       []bool{false},
	}
}

func TestWriteRead_RoundTripsAtCurrentVersion(t *testing.T) {
	c := fixtureCatalog()
	var buf bytes.Buffer
	code := Write(&buf, c, 0, 0, 1)
	require.Equal(t, project.ErrNone, code)

	restored := fixtureCatalog()
	restored.Subcatchments[0].SubAreas[0].Depth = 0
	restored.Nodes[0].NewDepth = 0
	restored.Links[0].NewFlow = 0

	code = Read(&buf, restored, 0, 0, 1)
	require.Equal(t, project.ErrNone, code)

	assert.InDelta(t, 0.01, restored.Subcatchments[0].SubAreas[0].Depth, 1e-9)
	assert.InDelta(t, 0.5, restored.Subcatchments[0].NewRunoff, 1e-9)
	assert.InDelta(t, 1.5, restored.Nodes[0].NewDepth, 1e-5)
	assert.InDelta(t, 3.0, restored.Links[0].NewFlow, 1e-5)
	assert.InDelta(t, 1.0, restored.Links[0].Setting, 1e-5)
}

func TestRead_CatalogSizeMismatchIsRejected(t *testing.T) {
	c := fixtureCatalog()
	var buf bytes.Buffer
	require.Equal(t, project.ErrNone, Write(&buf, c, 0, 0, 1))

	wrong := fixtureCatalog()
	wrong.Nodes = append(wrong.Nodes, &node.Node{ID: "J2", Type: node.Junction})

	code := Read(&buf, wrong, 0, 0, 1)
	assert.Equal(t, project.ErrHotstartFileFormat, code)
}

func TestRead_FlowUnitMismatchIsRejected(t *testing.T) {
	c := fixtureCatalog()
	var buf bytes.Buffer
	require.Equal(t, project.ErrNone, Write(&buf, c, 0, 0, 1))

	code := Read(&buf, fixtureCatalog(), 0, 0, 2)
	assert.Equal(t, project.ErrHotstartFileFormat, code)
}

func TestRead_UnknownMagicIsRejected(t *testing.T) {
	code := Read(bytes.NewReader([]byte("NOT-A-HOTSTART-FILE")), fixtureCatalog(), 0, 0, 1)
	assert.Equal(t, project.ErrHotstartFileFormat, code)
}

func TestRead_NaNPayloadValueIsRejected(t *testing.T) {
	c := fixtureCatalog()
	var buf bytes.Buffer
	require.Equal(t, project.ErrNone, Write(&buf, c, 0, 0, 1))

	raw := buf.Bytes()
	// corrupt the first f64 of the runoff payload (right after the 6-int32
	// header following the 15-byte V4 magic) with a NaN bit pattern.
	offset := len(magics[V4]) + 6*4
	nanBits := math.Float64bits(math.NaN())
	for i := 0; i < 8; i++ {
		raw[offset+i] = byte(nanBits >> (8 * i))
	}

	code := Read(bytes.NewReader(raw), fixtureCatalog(), 0, 0, 1)
	assert.Equal(t, project.ErrHotstartFileRead, code)
}

func TestPeekHeader_ReportsVersionAndCounts(t *testing.T) {
	c := fixtureCatalog()
	var buf bytes.Buffer
	require.Equal(t, project.ErrNone, Write(&buf, c, 2, 3, 1))

	h, code := PeekHeader(&buf)
	require.Equal(t, project.ErrNone, code)
	assert.Equal(t, CurrentVersion, h.Version)
	assert.Equal(t, 1, h.NSubcatch)
	assert.Equal(t, 1, h.NNodes)
	assert.Equal(t, 1, h.NLinks)
	assert.Equal(t, 2, h.NPollutants)
	assert.Equal(t, 3, h.NLandUses)
	assert.Equal(t, 1, h.FlowUnitCode)
}
