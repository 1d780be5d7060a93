package mem

// IntsDump provides page layout data for testing.
type IntsDump struct {
	Bases []int
	Sizes []int
	Pages [][]int
}

// Dump memory data for testing.
func (m *Ints) Dump() (d IntsDump) {
	d.Bases = m.bases
	d.Sizes = m.sizes
	d.Pages = m.pages
	return d
}
