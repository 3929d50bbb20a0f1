package domain

// ValidateSeat checks a (row, seat) pair against the airplane's seat grid.
// Both bounds are inclusive and count from 1. Row and seat are checked
// independently, so an out-of-range row and an out-of-range seat produce
// two field errors in one ValidationError.
//
// Every write path into storage runs this again before inserting, not just
// the API layer, so no code path can persist an out-of-range seat.
func ValidateSeat(row, seat int, airplane Airplane) error {
	ve := NewValidationError()
	if row < 1 || row > airplane.Rows {
		ve.Addf("row", "row number must be in available range: (1, %d)", airplane.Rows)
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		ve.Addf("seat", "seat number must be in available range: (1, %d)", airplane.SeatsInRow)
	}
	return ve.ErrOrNil()
}
