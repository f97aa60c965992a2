package model

// Task is the domain model for a single to-do entry.
// Title is fixed at creation; only Completed changes afterwards.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Identity is the display identity of whoever runs the session.
type Identity struct {
	Name string `json:"name"`
}

// Stats is the derived summary shown under the list.
type Stats struct {
	Total     int
	Completed int
}

// Pending is the number of tasks not yet completed.
func (s Stats) Pending() int { return s.Total - s.Completed }

// Summarize recomputes Stats from a task list.
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	return s
}
