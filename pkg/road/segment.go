package road

import (
	"github.com/paulmach/orb"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
	Residential
	Unclassified
)

type Segment struct {
	ID     int64
	Type   RoadType
	Points []orb.Point
	Tags   map[string]string

	// Direction in which traffic may follow Points.
	Direction Direction
}

type Direction int

const (
	BothWays Direction = iota
	Forward
	Backward
)

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary", "Residential", "Unclassified"}[r]
}

// ParseRoadType maps the value of an OSM highway tag to a RoadType. Link
// roads share the type of the road they belong to.
func ParseRoadType(highway string) RoadType {
	switch highway {
	case "motorway", "motorway_link":
		return Motorway
	case "trunk", "trunk_link":
		return Trunk
	case "primary", "primary_link":
		return Primary
	case "secondary", "secondary_link":
		return Secondary
	case "tertiary", "tertiary_link":
		return Tertiary
	case "residential", "living_street":
		return Residential
	case "unclassified", "road":
		return Unclassified
	default:
		return Unknown
	}
}

func (d Direction) String() string {
	return []string{"BothWays", "Forward", "Backward"}[d]
}

// ParseDirection interprets the OSM oneway tag. "-1" means one-way against
// the order of the way's nodes. Motorways and roundabouts are one-way unless
// tagged otherwise.
func ParseDirection(roadType RoadType, tags map[string]string) Direction {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return Forward
	case "-1", "reverse":
		return Backward
	case "no", "false", "0":
		return BothWays
	}
	if roadType == Motorway || tags["junction"] == "roundabout" {
		return Forward
	}
	return BothWays
}
