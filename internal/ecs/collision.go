package ecs

// CollisionKind distinguishes contact start from contact end
type CollisionKind int

const (
	CollisionStarted CollisionKind = iota
	CollisionStopped
)

// CollisionEvent is produced by the physics step for an unordered pair
type CollisionEvent struct {
	Kind   CollisionKind
	A, B   EntityID
	Sensor bool
}

// Pair is an ordered (A, B) view of a contact
type Pair struct {
	A, B EntityID
}

// SensorPairs yields (a, b) and (b, a) for every started sensor contact
func SensorPairs(events []CollisionEvent) []Pair {
	return pairs(events, true)
}

// ContactPairs yields (a, b) and (b, a) for every started contact, sensor or solid
func ContactPairs(events []CollisionEvent) []Pair {
	return pairs(events, false)
}

func pairs(events []CollisionEvent, sensorOnly bool) []Pair {
	out := make([]Pair, 0, len(events)*2)
	for _, ev := range events {
		if ev.Kind != CollisionStarted {
			continue
		}
		if sensorOnly && !ev.Sensor {
			continue
		}
		out = append(out, Pair{A: ev.A, B: ev.B}, Pair{A: ev.B, B: ev.A})
	}
	return out
}
