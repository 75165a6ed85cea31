package input

// Direction is one of the four movement directions
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Set is a bitset of held directions
type Set uint8

// Of builds a set from directions
func Of(dirs ...Direction) Set {
	var s Set
	for _, d := range dirs {
		s |= 1 << d
	}
	return s
}

// Has reports whether d is in the set
func (s Set) Has(d Direction) bool {
	return s&(1<<d) != 0
}

// Empty reports whether no direction is held
func (s Set) Empty() bool {
	return s == 0
}
