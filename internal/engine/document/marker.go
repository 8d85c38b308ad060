package document

import "sort"

// MarkerID identifies an installed marker.
type MarkerID int

// MarkerType selects how a marker is drawn.
type MarkerType string

const (
	MarkerFullLine   MarkerType = "fullLine"
	MarkerScreenLine MarkerType = "screenLine"
	MarkerText       MarkerType = "text"
)

// Marker is a visual decoration attached to a range.
type Marker struct {
	ID      MarkerID
	Range   Range
	Class   string
	Type    MarkerType
	InFront bool
}

// AddMarker installs a marker and returns its id.
func (d *Document) AddMarker(rng Range, class string, typ MarkerType, inFront bool) MarkerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextMarker++
	id := d.nextMarker
	d.markers[id] = Marker{ID: id, Range: rng, Class: class, Type: typ, InFront: inFront}
	return id
}

// RemoveMarker uninstalls a marker. It returns false if id is unknown.
func (d *Document) RemoveMarker(id MarkerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.markers[id]; !ok {
		return false
	}
	delete(d.markers, id)
	return true
}

// Marker returns the marker with the given id.
func (d *Document) Marker(id MarkerID) (Marker, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.markers[id]
	if !ok {
		return Marker{}, ErrMarkerNotFound
	}
	return m, nil
}

// Markers returns all installed markers ordered by id.
func (d *Document) Markers() []Marker {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Marker, 0, len(d.markers))
	for _, m := range d.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
