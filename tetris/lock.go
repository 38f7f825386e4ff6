package tetris

import "slices"

// LockResult lists the field rows a locked piece wrote to.
type LockResult struct {
	Rows []int
}

// Lock writes the piece into the field and returns the touched rows,
// ascending and without duplicates. Cells outside the field are dropped.
func Lock(field *Field, piece Piece) LockResult {
	var rows []int
	for _, cell := range piece.Cells() {
		if !field.Set(cell.X, cell.Y, Locked(piece.Shape, cell.Decorated)) {
			continue
		}
		if !slices.Contains(rows, cell.Y) {
			rows = append(rows, cell.Y)
		}
	}
	slices.Sort(rows)
	return LockResult{Rows: rows}
}

// ClearResult reports the rows removed by one line clear, in their
// positions before the clear.
type ClearResult struct {
	Rows []int
}

func (r ClearResult) Count() int {
	return len(r.Rows)
}

// ClearLines removes every complete row among rows. Completeness is decided
// on the field as it was before any row is removed; each removal then pulls
// the rows above it down by one and empties row 0.
func ClearLines(field *Field, rows []int) ClearResult {
	candidates := slices.Clone(rows)
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	var complete []int
	for _, y := range candidates {
		if field.RowComplete(y) {
			complete = append(complete, y)
		}
	}

	for _, y := range complete {
		for row := y; row > 0; row-- {
			for x := 1; x < field.width-1; x++ {
				field.cells[field.Index(x, row)] = field.cells[field.Index(x, row-1)]
			}
		}
		for x := 1; x < field.width-1; x++ {
			field.cells[field.Index(x, 0)] = Empty
		}
	}

	return ClearResult{Rows: complete}
}

// ClearCompletedLines is ClearLines reduced to the number of rows cleared.
func ClearCompletedLines(field *Field, rows []int) int {
	return ClearLines(field, rows).Count()
}
