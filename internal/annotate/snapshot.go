package annotate

// Snapshot is the display data handed to the renderer.
type Snapshot struct {
	Groups    []string
	Rows      []Row
	Start     int
	End       int
	Selecting bool
	Exhausted bool
}

// Highlighted reports whether word i is in the highlighted range.
func (s Snapshot) Highlighted(i int) bool { return i >= s.Start && i <= s.End }

// Rows returns the current annotation, one row per word.
func (m *Machine) Rows() []Row {
	words := m.sent.All()
	rows := make([]Row, 0, len(words))
	for _, w := range words {
		labels := make([]string, len(m.groups))
		for i, g := range m.groups {
			if l, ok := w.Label(g); ok {
				labels[i] = l
			} else {
				labels[i] = Unlabeled
			}
		}
		rows = append(rows, Row{Word: w.Text(), Labels: labels})
	}
	return rows
}

func (m *Machine) Snapshot() Snapshot {
	r := m.active()
	return Snapshot{
		Groups:    m.Groups(),
		Rows:      m.Rows(),
		Start:     r.Start,
		End:       r.End,
		Selecting: m.sel != nil,
		Exhausted: m.exhausted,
	}
}
