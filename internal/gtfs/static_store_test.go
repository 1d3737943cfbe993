package gtfs

import (
	"sort"
	"testing"

	remoteGtfs "github.com/jamespfennell/gtfs"

	"geocalc.onebusaway.org/internal/geo"
)

func TestStopIndexReplace(t *testing.T) {
	index := NewStopIndex()

	if _, ok := index.Bounds(); ok {
		t.Fatal("expected empty index to have no bounds")
	}

	n := index.Replace(newTestStatic())
	if n != 4 {
		t.Fatalf("expected 4 indexed stops, got %d", n)
	}
	if index.Len() != 4 {
		t.Errorf("expected Len 4, got %d", index.Len())
	}

	c, ok := index.Get("1108")
	if !ok || c != (geo.Coordinate{Lat: 47.6097, Long: -122.3379}) {
		t.Errorf("unexpected coordinate for 1108: %v, %v", c, ok)
	}

	platform, ok := index.Get("platform")
	if !ok {
		t.Fatal("expected platform to inherit its station's location")
	}
	if platform != (geo.Coordinate{Lat: 47.6016, Long: -122.3317}) {
		t.Errorf("expected station coordinate, got %v", platform)
	}

	if _, ok := index.Get("nowhere"); ok {
		t.Error("expected stop without any location to be skipped")
	}
	if got := index.Name("11060"); got != "University St Station" {
		t.Errorf("unexpected name %q", got)
	}

	bbox, ok := index.Bounds()
	if !ok {
		t.Fatal("expected bounds after loading stops")
	}
	if !bbox.Contains(47.605, -122.334) {
		t.Errorf("expected bounds %+v to contain downtown", bbox)
	}
	if bbox.Contains(47.7, -122.334) {
		t.Errorf("expected bounds %+v to exclude points north of the stops", bbox)
	}
}

func TestStopIndexReplaceDropsOldStops(t *testing.T) {
	index := NewStopIndex()
	index.Replace(newTestStatic())

	index.Replace(&remoteGtfs.Static{Stops: []remoteGtfs.Stop{
		{Id: "new", Latitude: ptr(1), Longitude: ptr(2)},
	}})

	if _, ok := index.Get("1108"); ok {
		t.Error("expected stops from the previous bundle to be gone")
	}
	if _, ok := index.Get("new"); !ok {
		t.Error("expected stop from the new bundle")
	}

	index.Replace(&remoteGtfs.Static{})
	if _, ok := index.Bounds(); ok {
		t.Error("expected no bounds for a bundle without located stops")
	}
}

func TestStopIndexLookup(t *testing.T) {
	index := NewStopIndex()
	index.Replace(newTestStatic())

	found, missing := index.Lookup([]string{"11060", "bogus", "1108", "nowhere"})

	if len(found) != 2 {
		t.Errorf("expected 2 found stops, got %d", len(found))
	}
	sort.Strings(missing)
	if len(missing) != 2 || missing[0] != "bogus" || missing[1] != "nowhere" {
		t.Errorf("unexpected missing stops %v", missing)
	}
}
