package mem

import "fmt"

// PagedCore provides functionality common to any paged memory model.
// Addresses are signed so that they may come straight off of a data stack;
// negative addresses are always out of range.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize int

	// Limit specifies the number of addressable cells; any load or store
	// at or past it results in a LimitError. Zero means unlimited.
	Limit int

	bases []int
	sizes []int
}

// LimitError indicates that a memory operation, like load or store, fell
// outside of the addressable range.
type LimitError struct {
	Addr  int
	Limit int
	Op    string
}

func (lim LimitError) Error() string {
	if lim.Addr < 0 {
		return fmt.Sprintf("invalid %v address %v", lim.Op, lim.Addr)
	}
	return fmt.Sprintf("%v @%v exceeds memory limit %v", lim.Op, lim.Addr, lim.Limit)
}

func (m *PagedCore) findPage(addr int) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := (i+j)/2 + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

func (m *PagedCore) allocPage(pageID int, addr int) (base, size int, isNew bool) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size = m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			lastEnd := m.bases[i] + m.sizes[i]
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		m.bases = append(m.bases, base)
		m.sizes = append(m.sizes, size)
		return base, size, true
	}

	base = m.bases[pageID]
	if addr < base {
		size = m.PageSize
		nextBase := base
		base = addr / m.PageSize * m.PageSize
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		m.bases = append(m.bases, 0)
		m.sizes = append(m.sizes, 0)
		copy(m.bases[pageID+1:], m.bases[pageID:])
		copy(m.sizes[pageID+1:], m.sizes[pageID:])
		m.bases[pageID] = base
		m.sizes[pageID] = size
		return base, size, true
	}

	return base, m.sizes[pageID], false
}

// checkRange validates the half open range [addr, end).
func (m *PagedCore) checkRange(addr, end int, op string) error {
	if addr < 0 {
		return LimitError{addr, m.Limit, op}
	}
	if m.Limit != 0 && end > m.Limit {
		return LimitError{end - 1, m.Limit, op}
	}
	return nil
}
