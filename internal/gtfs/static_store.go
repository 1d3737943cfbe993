package gtfs

import (
	"sync"

	remoteGtfs "github.com/jamespfennell/gtfs"

	"geocalc.onebusaway.org/internal/geo"
)

// StopIndex is a thread-safe lookup from GTFS stop ID to coordinate, built
// from the most recently loaded static bundle. Only the coordinates are
// kept, so the parsed bundle can be released after indexing.
type StopIndex struct {
	mu     sync.RWMutex
	stops  map[string]geo.Coordinate
	names  map[string]string
	bounds geo.BoundingBox
	ready  bool
}

// NewStopIndex returns an empty index. Lookups on an empty index miss.
func NewStopIndex() *StopIndex {
	return &StopIndex{}
}

// Replace rebuilds the index from static. Stops without coordinates take
// the location of their nearest ancestor that has one (a platform inside a
// station, a boarding area on a platform); stops with no located ancestor
// are skipped. It returns the number of stops indexed.
func (s *StopIndex) Replace(static *remoteGtfs.Static) int {
	stops := make(map[string]geo.Coordinate, len(static.Stops))
	names := make(map[string]string, len(static.Stops))
	located := make([]geo.Coordinate, 0, len(static.Stops))

	for i := range static.Stops {
		stop := &static.Stops[i]
		c, ok := stopCoordinate(stop)
		if !ok {
			continue
		}
		stops[stop.Id] = c
		names[stop.Id] = stop.Name
		located = append(located, c)
	}

	bounds, err := geo.Bounds(located)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = stops
	s.names = names
	s.bounds = bounds
	s.ready = err == nil
	return len(stops)
}

// stopCoordinate walks up the parent_station hierarchy until it finds a
// stop with both latitude and longitude.
// https://gtfs.org/schedule/reference/#stopstxt
func stopCoordinate(stop *remoteGtfs.Stop) (geo.Coordinate, bool) {
	for depth := 0; stop != nil && depth < 4; depth++ {
		if stop.Latitude != nil && stop.Longitude != nil {
			return geo.Coordinate{Lat: *stop.Latitude, Long: *stop.Longitude}, true
		}
		stop = stop.Parent
	}
	return geo.Coordinate{}, false
}

// Get returns the coordinate for stopID.
func (s *StopIndex) Get(stopID string) (geo.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.stops[stopID]
	return c, ok
}

// Name returns the stop_name for stopID, or "" when unknown.
func (s *StopIndex) Name(stopID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[stopID]
}

// Lookup resolves stopIDs in order. IDs that are not in the index are
// returned in missing and leave no entry in found.
func (s *StopIndex) Lookup(stopIDs []string) (found map[string]geo.Coordinate, missing []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found = make(map[string]geo.Coordinate, len(stopIDs))
	for _, id := range stopIDs {
		if c, ok := s.stops[id]; ok {
			found[id] = c
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

func (s *StopIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stops)
}

// Bounds returns the box around every indexed stop. ok is false until a
// bundle with at least one located stop has been loaded.
func (s *StopIndex) Bounds() (bbox geo.BoundingBox, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.ready
}
