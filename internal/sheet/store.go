package sheet

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cmbp/sitedeck/internal/logging"
	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/parser"
)

// ErrFileMissing is returned by Load when the backing spreadsheet does not
// exist. There is no fallback: the dashboard cannot start without its data.
var ErrFileMissing = errors.New("data file not found")

// Store binds the in-memory table to its backing spreadsheet file. Structural
// changes (column add/delete, row delete) rewrite the file immediately; cell
// edits and added rows persist only on Save. There is no undo: a save
// overwrites the file in place.
type Store struct {
	Path  string
	Table *Table
}

// Load reads the spreadsheet at path into a Store. Column names are trimmed,
// date columns and Progress are coerced to canonical cell form, and missing
// Order Status / Progress columns are backfilled. Unknown columns ride along
// untouched.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table := &Table{}
	if len(raw) > 0 {
		for _, name := range raw[0] {
			name = strings.TrimSpace(name)
			table.Columns = append(table.Columns, Column{Name: name, Type: columnTypeFor(name)})
		}
		for _, rawRow := range raw[1:] {
			row := make([]string, len(table.Columns))
			for i, col := range table.Columns {
				cell := ""
				if i < len(rawRow) {
					cell = rawRow[i]
				}
				row[i] = coerceCell(col, cell)
			}
			table.Rows = append(table.Rows, row)
		}
	}

	// Backfill the columns the dashboard depends on but older files lack.
	if !table.HasColumn(ColOrderStatus) {
		table.appendColumn(Column{Name: ColOrderStatus, Type: TypeText}, models.OrderStatusNotOrdered)
	}
	if !table.HasColumn(ColProgress) {
		table.appendColumn(Column{Name: ColProgress, Type: TypeFloat}, "0")
	}

	logging.L.Info("loaded task table",
		zap.String("path", path),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(table.Columns)))

	return &Store{Path: path, Table: table}, nil
}

func (t *Table) appendColumn(col Column, value string) {
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
}

// Save overwrites the backing file with the current table. On failure the
// in-memory state is left as it was: edited but not persisted.
func (s *Store) Save() error {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	header := make([]interface{}, len(s.Table.Columns))
	for i, c := range s.Table.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range s.Table.Rows {
		out := make([]interface{}, len(row))
		for i, cell := range row {
			out[i] = savedCell(s.Table.Columns[i], cell)
		}
		ref, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", r, err)
		}
		if err := f.SetSheetRow(sheetName, ref, &out); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		logging.L.Error("save failed", zap.String("path", s.Path), zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", s.Path, err)
	}

	logging.L.Info("saved task table", zap.String("path", s.Path), zap.Int("rows", len(s.Table.Rows)))
	return nil
}

// savedCell converts a canonical cell back to the value written to the file.
// Numeric columns are written as numbers so spreadsheet apps treat them as
// such; everything else is written as text.
func savedCell(col Column, cell string) interface{} {
	switch col.Type {
	case TypeInteger:
		if n, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil {
			return n
		}
	case TypeFloat:
		if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return v
		}
	}
	return cell
}

// AddColumn appends a typed, default-valued column and rewrites the file.
func (s *Store) AddColumn(name string, typ ColumnType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("column name must not be empty")
	}
	if s.Table.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	s.Table.appendColumn(Column{Name: name, Type: typ}, typ.defaultCell())
	return s.Save()
}

// DeleteColumn removes a column by name and rewrites the file.
func (s *Store) DeleteColumn(name string) error {
	idx := s.Table.ColumnIndex(name)
	if idx < 0 {
		return fmt.Errorf("no column named %q", name)
	}
	s.Table.Columns = append(s.Table.Columns[:idx], s.Table.Columns[idx+1:]...)
	for i, row := range s.Table.Rows {
		s.Table.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
	return s.Save()
}

// DeleteRow removes the row at a zero-based position and rewrites the file.
func (s *Store) DeleteRow(index int) error {
	if index < 0 || index >= len(s.Table.Rows) {
		return fmt.Errorf("row index %d out of range (0-%d)", index, len(s.Table.Rows)-1)
	}
	s.Table.Rows = append(s.Table.Rows[:index], s.Table.Rows[index+1:]...)
	return s.Save()
}

// AddRow appends an empty row with per-column defaults and returns its index.
// The row lives in memory until Save.
func (s *Store) AddRow() int {
	row := make([]string, len(s.Table.Columns))
	for i, col := range s.Table.Columns {
		switch col.Name {
		case ColStatus:
			row[i] = models.StatusNotStarted
		case ColOrderStatus:
			row[i] = models.OrderStatusNotOrdered
		case ColProgress:
			row[i] = "0"
		default:
			row[i] = col.Type.defaultCell()
		}
	}
	s.Table.Rows = append(s.Table.Rows, row)
	return len(s.Table.Rows) - 1
}

// SetCell updates one cell in memory, applying the same coercions load
// applies: blank Status/Order Status fall back to their defaults, unparseable
// or out-of-range Progress coerces to 0, and date cells must parse.
func (s *Store) SetCell(row int, column, value string) error {
	idx := s.Table.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("no column named %q", column)
	}
	if row < 0 || row >= len(s.Table.Rows) {
		return fmt.Errorf("row index %d out of range (0-%d)", row, len(s.Table.Rows)-1)
	}

	col := s.Table.Columns[idx]
	if col.Type == TypeDate && strings.TrimSpace(value) != "" {
		if _, err := parser.ParseDate(value); err != nil {
			return err
		}
	}
	s.Table.Rows[row][idx] = coerceCell(col, value)
	return nil
}
