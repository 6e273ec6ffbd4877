package grid

// Tile identifies the type of a single map cell.
type Tile uint8

const (
	// Border pads the map edge during rendering and observation
	// windows. Not paintable by the agent.
	Border Tile = iota
	Empty
	Wall
	// Path marks shortest-path cells in rendered output. Not paintable
	// by the agent.
	Path
)

func (t Tile) String() string {
	switch t {
	case Border:
		return "border"
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Path:
		return "path"
	}
	return "unknown"
}

// Paintable reports whether the agent may write this tile onto the map.
func (t Tile) Paintable() bool {
	return t == Empty || t == Wall
}
