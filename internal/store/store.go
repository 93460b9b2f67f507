// Package store provides row store adapters for the tracker tables.
//
// Every adapter implements core.Store and core.TableInitializer. Text-backed
// stores (workbook, CSV, SQL) keep cells as strings and decode them into
// typed values with the registered table definition on read.
package store

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// decodeTable turns raw string records (header first) into a core.Table.
// Rows with no non-blank cell are skipped.
func decodeTable(name string, records [][]string) core.Table {
	if len(records) == 0 {
		return core.Table{}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	header = trimTrailingBlank(header)

	def, _ := core.Get(name)
	t := core.Table{Header: header}
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		t.Rows = append(t.Rows, core.DecodeRow(def, header, rec))
	}
	return t
}

func trimTrailingBlank(header []string) []string {
	n := len(header)
	for n > 0 && header[n-1] == "" {
		n--
	}
	return header[:n]
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func tableNotFound(name string) error {
	return fmt.Errorf("%w: %s", core.ErrTableNotFound, name)
}
