package core

// ToRecords zips each row with header. Missing trailing cells are left out of
// the record and extra cells are dropped.
func ToRecords(header []string, rows [][]Value) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(header))
		for i, col := range header {
			if i >= len(row) {
				break
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// FindRecords reads a table, filters it and maps the matches to records.
func FindRecords(t Table, c Criteria) ([]Record, error) {
	matched, err := Filter(t, c)
	if err != nil {
		return nil, err
	}
	if matched.Len() == 0 {
		return nil, nil
	}
	return ToRecords(matched.Header, matched.Rows), nil
}
