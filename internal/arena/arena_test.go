package arena

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/ast"
	"github.com/tailslide/tailslide-go/internal/symbols"
	"github.com/tailslide/tailslide-go/internal/token"
	"github.com/tailslide/tailslide-go/internal/types"
)

func TestTrackCountsNodes(t *testing.T) {
	a := New()
	n := a.Track(ast.NewIdentifier("x", types.INTEGER, token.Range{}))

	if a.NodeCount() != 1 {
		t.Fatalf("NodeCount() = %d, want 1", a.NodeCount())
	}
	if n.Name != "x" {
		t.Error("Track should return the tracked node unchanged")
	}
}

func TestTrackNilIsNoop(t *testing.T) {
	a := New()
	if got := a.Track(nil); got != nil {
		t.Error("Track(nil) should return nil")
	}
	if a.NodeCount() != 0 {
		t.Error("tracking nil should not count as a tracked node")
	}
}

func TestTrackTableCountsTables(t *testing.T) {
	a := New()
	tbl := a.TrackTable(symbols.NewTable(nil))

	if a.TableCount() != 1 {
		t.Fatalf("TableCount() = %d, want 1", a.TableCount())
	}
	if tbl == nil {
		t.Error("TrackTable should return the tracked table unchanged")
	}
}

func TestResetClearsBookkeepingOnly(t *testing.T) {
	a := New()
	n := a.Track(ast.NewIdentifier("x", types.INTEGER, token.Range{}))
	a.TrackTable(symbols.NewTable(nil))

	a.Reset()

	if a.NodeCount() != 0 || a.TableCount() != 0 {
		t.Error("Reset should drop the arena's own bookkeeping")
	}
	if n.Name != "x" {
		t.Error("Reset must not mutate nodes already handed out; the GC owns their lifetime, not the arena")
	}
}
