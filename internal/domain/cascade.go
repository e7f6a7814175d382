// internal/domain/cascade.go
package domain

// Subtree is a point-in-time copy of one entity and all of its descendants,
// held as flat per-level slices. Parent/child links are carried by the
// hierarchical id fields on each document. Used by the cascade operator for
// duplication input/output and for pre-delete snapshots.
type Subtree struct {
	Programs  []Program  `json:"programs,omitempty"`
	Weeks     []Week     `json:"weeks,omitempty"`
	Workouts  []Workout  `json:"workouts,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
	Sets      []Set      `json:"sets,omitempty"`
}

// Counts tallies the subtree per level.
func (s *Subtree) Counts() CascadeCounts {
	return CascadeCounts{
		Programs:  len(s.Programs),
		Weeks:     len(s.Weeks),
		Workouts:  len(s.Workouts),
		Exercises: len(s.Exercises),
		Sets:      len(s.Sets),
	}
}

// CascadeCounts reports how many documents a cascade touched (or would
// touch) at each level. The UI uses it for confirmation messaging.
type CascadeCounts struct {
	Programs  int `json:"programs"`
	Weeks     int `json:"weeks"`
	Workouts  int `json:"workouts"`
	Exercises int `json:"exercises"`
	Sets      int `json:"sets"`
}

// Total is the number of write operations the cascade implies.
func (c CascadeCounts) Total() int {
	return c.Programs + c.Weeks + c.Workouts + c.Exercises + c.Sets
}

// IDMapping maps every source entity id (hex) to its newly created
// counterpart id (hex) after a duplication, covering the full subtree.
type IDMapping map[string]string
