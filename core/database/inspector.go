package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlNoSuchTable is ER_NO_SUCH_TABLE.
const mysqlNoSuchTable = 1146

// Column is one column of a live table, names and types lower-cased.
type Column struct {
	Field string
	Type  string
}

type sqliteColumn struct {
	Name string
	Type string
}

type mysqlColumn struct {
	Field string
	Type  string
}

// TableDrift lists what a live table lacks compared to its model.
type TableDrift struct {
	Table          string   `json:"table"`
	Missing        bool     `json:"missing"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// TableColumns reads the columns of a table. A table that does not exist
// yields no columns and no error.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	if db.Dialector.Name() == DriverSQLite {
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
		columns := make([]Column, 0, len(rows))
		for _, r := range rows {
			columns = append(columns, Column{Field: strings.ToLower(r.Name), Type: strings.ToLower(r.Type)})
		}
		return columns, nil
	}

	var rows []mysqlColumn
	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&rows).Error
	if err != nil {
		var myErr *mysqldriver.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlNoSuchTable {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	columns := make([]Column, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, Column{Field: strings.ToLower(r.Field), Type: strings.ToLower(r.Type)})
	}
	return columns, nil
}

// Drift compares the live schema with the tables the models expect and
// returns one entry per table that is missing or lacks columns.
func Drift(db *gorm.DB, models ...any) ([]TableDrift, error) {
	var drift []TableDrift
	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		columns, err := TableColumns(db, table)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			drift = append(drift, TableDrift{Table: table, Missing: true})
			continue
		}

		live := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			live[c.Field] = struct{}{}
		}
		var missing []string
		for _, name := range stmt.Schema.DBNames {
			if _, ok := live[strings.ToLower(name)]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			drift = append(drift, TableDrift{Table: table, MissingColumns: missing})
		}
	}
	return drift, nil
}
