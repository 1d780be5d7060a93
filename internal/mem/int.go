package mem

// DefaultIntsPageSize provides a default for Ints.PageSize.
const DefaultIntsPageSize = 256

// Ints implements an integer cell oriented paged memory. Pages are
// allocated lazily on store; never stored cells read as 0.
type Ints struct {
	PagedCore
	pages [][]int
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Ints) Size() int {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + len(m.pages[i])
	}
	return 0
}

// Reset drops all allocated pages, leaving PageSize and Limit in place.
func (m *Ints) Reset() {
	m.bases = m.bases[:0]
	m.sizes = m.sizes[:0]
	m.pages = m.pages[:0]
}

// Load returns a single value from the given address.
func (m *Ints) Load(addr int) (int, error) {
	if err := m.checkRange(addr, addr+1, "load"); err != nil {
		return 0, err
	}

	if len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := addr - base; 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// LoadInto reads len(buf) integers from memory starting at addr, zeroing the
// result buffer wherever unallocated pages are encountered. No partial load
// is done when the range is invalid.
func (m *Ints) LoadInto(addr int, buf []int) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + len(buf)
	if err := m.checkRange(addr, end, "load"); err != nil {
		return err
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		if skip := base - addr; skip > 0 {
			if skip >= len(buf) {
				break
			}
			addr += skip
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if skip := addr - base; skip > 0 {
			if skip >= len(page) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += n
	}

	for i := range buf {
		buf[i] = 0
	}

	return nil
}

// Stor stores any values at addr, allocating pages if necessary.
// No partial store is done when the range is invalid.
func (m *Ints) Stor(addr int, values ...int) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + len(values)
	if err := m.checkRange(addr, end, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultIntsPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += n
	}

	return nil
}

func (m *Ints) allocPage(pageID int, addr int) (base, size int, page []int) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]int, size)
		if pageID == len(m.pages) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
