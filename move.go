package main

type Move struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Depth int `json:"depth,omitempty"`
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y
}
