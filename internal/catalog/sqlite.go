package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// LoadSQLite reads ticker records from a SQLite reference database with a
// tickers(symbol, name, type) table, in rowid order. Used instead of CSV
// when the config points at a database path.
func LoadSQLite(path string) ([]Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT symbol, name, type FROM tickers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying tickers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Symbol, &rec.Name, &rec.Kind); err != nil {
			return nil, fmt.Errorf("scanning ticker row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
