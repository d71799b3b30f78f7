package integration

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/dshills/kiconstraint/pkg/board"
	"github.com/dshills/kiconstraint/pkg/rng"
)

// buildRandomFixture generates n disjoint horizontal segments of random
// length, each carrying an orthogonal dimension that pins it horizontal at
// its original length. A solver that preserves already-satisfied geometry
// should leave every segment's length and orientation unchanged.
func buildRandomFixture(seed uint64, n int) *board.Fixture {
	configHash := sha256.Sum256([]byte("fuzz_v1"))
	segRNG := rng.NewRNG(seed, "segments", configHash[:])

	fx := &board.Fixture{BoardName: "fuzz"}
	for i := 0; i < n; i++ {
		length := segRNG.Float64Range(1.0, 20.0)
		y := float64(i) * 10.0
		seg := &board.ShapeSegment{
			Start: board.FromMM(0, y),
			End:   board.FromMM(length, y),
		}
		fx.Shapes = append(fx.Shapes, seg)
		fx.Dimensions = append(fx.Dimensions, &board.DimensionOrthogonal{
			Prefix: fmt.Sprintf("s%d:", i),
			Suffix: fmt.Sprintf("h, =%.4fmm", length),
			Start:  seg.Start, End: seg.End,
		})
	}
	return fx
}

// TestFuzz_RandomHorizontalSegmentsConverge runs several deterministically
// generated fixtures through the full pipeline and checks every segment
// keeps its prescribed length and stays horizontal.
func TestFuzz_RandomHorizontalSegmentsConverge(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		seed := seed
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			fx := buildRandomFixture(seed, 6)
			runPipeline(t, fx)

			for i, shape := range fx.Shapes {
				seg := shape.(*board.ShapeSegment)
				if seg.Start.Y != seg.End.Y {
					t.Errorf("segment %d not horizontal: %+v", i, seg)
				}
				got := float64(seg.End.X-seg.Start.X) / board.NmPerMM
				dim := fx.Dimensions[i].(*board.DimensionOrthogonal)
				var want float64
				fmt.Sscanf(dim.Suffix, "h, =%fmm", &want)
				if !almostEqual(got, want, 1e-3) {
					t.Errorf("segment %d length = %v, want %v", i, got, want)
				}
			}
		})
	}
}
