package dlx

import (
	"reflect"
	"testing"
)

// knuthExample builds the classic exact-cover example from Knuth's Dancing
// Links paper: columns 1..7, rows A..F, unique solution {B, D, F}.
func knuthExample() *Matrix {
	names := []string{"1", "2", "3", "4", "5", "6", "7"}
	m := NewMatrix(names)
	rows := [][]string{
		{"1", "4", "7"}, // A = row 0
		{"1", "4"},      // B = row 1
		{"4", "5", "7"}, // C = row 2
		{"3", "5", "6"}, // D = row 3
		{"2", "3", "6", "7"}, // E = row 4
		{"2", "7"},      // F = row 5
	}
	for i, cols := range rows {
		m.AddRow(i, cols)
	}
	return m
}

func TestSearchFindsKnownUniqueSolution(t *testing.T) {
	m := knuthExample()
	var got []int
	total, stopped := Search(m, 0, nil, func(sol []int) {
		got = append([]int(nil), sol...)
	})
	if stopped {
		t.Fatal("search should not have been stopped")
	}
	if total != 1 {
		t.Fatalf("total solutions = %d, want 1", total)
	}
	want := []int{1, 3, 5} // rows B, D, F
	gotSorted := append([]int(nil), got...)
	sortInts(gotSorted)
	if !reflect.DeepEqual(gotSorted, want) {
		t.Errorf("solution = %v, want %v", gotSorted, want)
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func TestCoverUncoverIsExactInverse(t *testing.T) {
	m := knuthExample()
	col := m.nameToHeader["4"]
	sizeBefore := m.colSize[col]
	rightBefore, leftBefore := m.right[col], m.left[col]

	m.cover(col)
	m.uncover(col)

	if m.colSize[col] != sizeBefore {
		t.Errorf("size not restored: got %d, want %d", m.colSize[col], sizeBefore)
	}
	if m.right[col] != rightBefore || m.left[col] != leftBefore {
		t.Errorf("horizontal links not restored")
	}
	if err := m.VerifyIntegrity(); err != nil {
		t.Errorf("integrity check failed after cover/uncover: %v", err)
	}
}

func TestCoverUncoverNestedIsExactInverse(t *testing.T) {
	m := knuthExample()
	c1 := m.nameToHeader["1"]
	c2 := m.nameToHeader["2"]

	m.cover(c1)
	m.cover(c2)
	m.uncover(c2)
	m.uncover(c1)

	if err := m.VerifyIntegrity(); err != nil {
		t.Errorf("integrity check failed after nested cover/uncover: %v", err)
	}
}

func TestEnumeratorMatchesBoundedSearchOrder(t *testing.T) {
	// A matrix with multiple solutions: two independent dominoes over a
	// 4-column universe, each coverable two ways.
	names := []string{"p1", "p2", "c1", "c2"}
	build := func() *Matrix {
		m := NewMatrix(names)
		m.AddRow(0, []string{"p1", "c1"})
		m.AddRow(1, []string{"p1", "c2"})
		m.AddRow(2, []string{"p2", "c1"})
		m.AddRow(3, []string{"p2", "c2"})
		return m
	}

	var bounded [][]int
	Search(build(), 0, nil, func(sol []int) {
		bounded = append(bounded, append([]int(nil), sol...))
	})

	m2 := build()
	e := NewEnumerator(m2)
	var resumed [][]int
	for {
		sol, ok := e.Next()
		if !ok {
			break
		}
		resumed = append(resumed, sol)
	}

	if !reflect.DeepEqual(bounded, resumed) {
		t.Errorf("bounded search order %v != resumable order %v", bounded, resumed)
	}
}

func TestSearchRespectsMaxSolutions(t *testing.T) {
	names := []string{"p1", "p2", "c1", "c2"}
	m := NewMatrix(names)
	m.AddRow(0, []string{"p1", "c1"})
	m.AddRow(1, []string{"p1", "c2"})
	m.AddRow(2, []string{"p2", "c1"})
	m.AddRow(3, []string{"p2", "c2"})

	total, stopped := Search(m, 1, nil, func([]int) {})
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if stopped {
		t.Error("maxSolutions truncation should not set stopped=true")
	}
}

func TestSearchShouldStopUnwindsCleanly(t *testing.T) {
	m := knuthExample()
	calls := 0
	total, stopped := Search(m, 0, func() bool {
		calls++
		return true
	}, func([]int) {})
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if !stopped {
		t.Error("expected stopped=true")
	}
	if err := m.VerifyIntegrity(); err != nil {
		t.Errorf("matrix left inconsistent after immediate stop: %v", err)
	}
}

func TestNoSolutionsWhenColumnDead(t *testing.T) {
	names := []string{"a", "b"}
	m := NewMatrix(names)
	m.AddRow(0, []string{"a"}) // column "b" has no covering row: dead end

	total, _ := Search(m, 0, nil, func([]int) {})
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}
