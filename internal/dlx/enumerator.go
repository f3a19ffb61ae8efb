package dlx

// frame is one level of the recursive search() described in spec.md §4.4,
// reified so it can be suspended and resumed. col is the column chosen at
// this level; row walks down col's data nodes (row == col means the level
// has tried every row and must back up).
type frame struct {
	col int
	row int
}

// Enumerator is the resumable, one-solution-at-a-time interface of spec.md
// §4.4. It exclusively owns its Matrix — per spec.md §3's lifecycle note,
// a node graph belongs to exactly one solve or session — and lowers the
// recursive search into an explicit frame stack, since Go has no native
// generator/yield to suspend a recursive call mid-stack (spec.md §9).
type Enumerator struct {
	m             *Matrix
	stack         []frame
	solution      []int
	started       bool
	exhausted     bool
	pendingReturn bool
}

// NewEnumerator creates a resumable enumerator over m. m must not be shared
// with any other Enumerator or bounded search concurrently.
func NewEnumerator(m *Matrix) *Enumerator {
	return &Enumerator{m: m}
}

// Next advances the search to the next complete solution, returning the row
// ids chosen (in the order they were added to the partial solution) and
// true, or (nil, false) once the enumeration is exhausted. The returned
// slice is owned by the caller; Next never aliases it on a later call.
func (e *Enumerator) Next() ([]int, bool) {
	if e.exhausted {
		return nil, false
	}
	m := e.m

	for {
		if !e.started {
			e.started = true
			if m.headerEmpty() {
				// No columns at all: the empty solution is the only one.
				e.exhausted = true
				return append([]int(nil), e.solution...), true
			}
			c := m.chooseColumn()
			if m.colSize[c] == 0 {
				e.exhausted = true
				return nil, false
			}
			m.cover(c)
			e.stack = append(e.stack, frame{col: c, row: m.down[c]})
			continue
		}

		if len(e.stack) == 0 {
			e.exhausted = true
			return nil, false
		}

		top := &e.stack[len(e.stack)-1]

		if e.pendingReturn {
			m.uncoverRowOthers(top.row)
			e.solution = e.solution[:len(e.solution)-1]
			top.row = m.down[top.row]
			e.pendingReturn = false
			continue
		}

		if top.row == top.col {
			m.uncover(top.col)
			e.stack = e.stack[:len(e.stack)-1]
			if len(e.stack) == 0 {
				e.exhausted = true
				return nil, false
			}
			e.pendingReturn = true
			continue
		}

		e.solution = append(e.solution, m.rowOf[top.row])
		m.coverRowOthers(top.row)

		if m.headerEmpty() {
			sol := append([]int(nil), e.solution...)
			e.pendingReturn = true
			return sol, true
		}

		c := m.chooseColumn()
		if m.colSize[c] == 0 {
			m.uncoverRowOthers(top.row)
			e.solution = e.solution[:len(e.solution)-1]
			top.row = m.down[top.row]
			continue
		}

		m.cover(c)
		e.stack = append(e.stack, frame{col: c, row: m.down[c]})
	}
}

// Search runs the bounded-callback interface of spec.md §4.4 on top of an
// Enumerator: collect up to maxSolutions solutions (0 means unbounded),
// calling shouldStop between solutions and unwinding cleanly if it returns
// true. It returns the total number of solutions emitted and whether
// shouldStop caused an early exit.
//
// maxSolutions doubles as the search budget the way util.py's
// solvePartial passes max_samples straight into dlx.search: this
// implementation's choice (documented in DESIGN.md) is that it counts
// emitted solutions, not internally discovered-and-discarded ones, since
// nothing downstream filters solutions after they are found.
func Search(m *Matrix, maxSolutions int, shouldStop func() bool, onSolution func([]int)) (total int, stopped bool) {
	e := NewEnumerator(m)
	for {
		if shouldStop != nil && shouldStop() {
			// Undo every cover the suspended search still holds, innermost
			// frame first, so m is left as it was before the search began.
			for len(e.stack) > 0 {
				top := e.stack[len(e.stack)-1]
				if e.pendingReturn {
					m.uncoverRowOthers(top.row)
				}
				m.uncover(top.col)
				e.stack = e.stack[:len(e.stack)-1]
				e.pendingReturn = true
			}
			return total, true
		}
		sol, ok := e.Next()
		if !ok {
			return total, false
		}
		total++
		onSolution(sol)
		if maxSolutions > 0 && total >= maxSolutions {
			return total, false
		}
	}
}
