package queue

import (
	"fmt"
	"strings"
	"time"
)

// Location identifies which queue directory currently holds an item.
type Location string

const (
	LocationTodo    Location = "todo"
	LocationWorking Location = "working"
	LocationDone    Location = "done"
)

var allLocations = []Location{LocationTodo, LocationWorking, LocationDone}

// Locations returns the three lifecycle locations in pipeline order.
func Locations() []Location {
	out := make([]Location, len(allLocations))
	copy(out, allLocations)
	return out
}

// ParseLocation validates a user-supplied location name.
func ParseLocation(value string) (Location, error) {
	switch Location(strings.ToLower(strings.TrimSpace(value))) {
	case LocationTodo:
		return LocationTodo, nil
	case LocationWorking:
		return LocationWorking, nil
	case LocationDone:
		return LocationDone, nil
	}
	return "", fmt.Errorf("unknown queue location %q (expected todo, working, or done)", value)
}

// Item describes a queue file. The filename is the item identity; content
// is read separately via Store.Read.
type Item struct {
	ID         string
	Location   Location
	Size       int64
	ModifiedAt time.Time
}
