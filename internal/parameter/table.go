package parameter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names of the tabular form.
const (
	ColumnLabel       = "label"
	ColumnValue       = "value"
	ColumnMinimum     = "minimum"
	ColumnMaximum     = "maximum"
	ColumnVary        = "vary"
	ColumnNonNegative = "non-negative"
	ColumnExpression  = "expression"
)

// Columns is the column order Records writes.
var Columns = []string{
	ColumnLabel, ColumnValue, ColumnMinimum, ColumnMaximum,
	ColumnVary, ColumnNonNegative, ColumnExpression,
}

// NAString is written for missing values.
const NAString = "None"

// FromRecords builds a root group from a table whose first row is a header.
// Only the label and value columns are required. Missing minimum and maximum
// cells mean unbounded.
func FromRecords(records [][]string) (*Group, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("parameter table is empty")
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColumnLabel, ColumnValue} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parameter table has no '%s' column", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if IsNA(v) {
			return ""
		}
		return v
	}

	root := NewGroup("")
	for n, row := range records[1:] {
		line := n + 2
		label := cell(row, ColumnLabel)
		if label == "" {
			return nil, fmt.Errorf("row %d: missing label", line)
		}
		p := New(label, 0)

		if v := cell(row, ColumnValue); v != "" {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("row %d (%s): invalid value '%s'", line, label, v)
			}
			p.Value = f
		}
		if v := cell(row, ColumnMinimum); v != "" {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("row %d (%s): invalid minimum '%s'", line, label, v)
			}
			p.Minimum = f
		}
		if v := cell(row, ColumnMaximum); v != "" {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("row %d (%s): invalid maximum '%s'", line, label, v)
			}
			p.Maximum = f
		}
		if v := cell(row, ColumnVary); v != "" {
			b, ok := toBool(v)
			if !ok {
				return nil, fmt.Errorf("row %d (%s): invalid vary '%s'", line, label, v)
			}
			p.Vary = b
		}
		if v := cell(row, ColumnNonNegative); v != "" {
			b, ok := toBool(v)
			if !ok {
				return nil, fmt.Errorf("row %d (%s): invalid non-negative '%s'", line, label, v)
			}
			p.NonNegative = b
		}
		p.Expression = cell(row, ColumnExpression)

		if err := root.Insert(label, p); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
	}
	return root, nil
}

// Records returns the table form of g, header first. Infinite bounds are
// written as empty cells and a missing expression as NAString.
func (g *Group) Records() [][]string {
	records := [][]string{append([]string(nil), Columns...)}
	for _, p := range g.All() {
		expr := p.Expression
		if expr == "" {
			expr = NAString
		}
		records = append(records, []string{
			p.FullLabel,
			formatFloat(p.Value),
			formatBound(p.Minimum),
			formatBound(p.Maximum),
			formatBool(p.Vary),
			formatBool(p.NonNegative),
			expr,
		})
	}
	return records
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatBound(f float64) string {
	if math.IsInf(f, 0) {
		return ""
	}
	return formatFloat(f)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
