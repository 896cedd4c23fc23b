package store

import (
	"fmt"
	"strings"

	"github.com/Kai-Rice/study-log/internal/models"
)

// AggOp is an aggregation operation over a numeric column.
type AggOp string

const (
	OpSum   AggOp = "sum"
	OpAvg   AggOp = "avg"
	OpMin   AggOp = "min"
	OpMax   AggOp = "max"
	OpCount AggOp = "count"
)

// ParseAggOp validates an op name from the CLI.
func ParseAggOp(s string) (AggOp, error) {
	op := AggOp(strings.ToLower(strings.TrimSpace(s)))
	switch op {
	case OpSum, OpAvg, OpMin, OpMax, OpCount:
		return op, nil
	default:
		return "", Usagef("unknown op %q (want sum, avg, min, max or count)", s)
	}
}

// Aggregate applies op over the non-empty values of the named column across
// all rows matching pred (nil pred = all rows). The column must be numeric;
// aggregating anything else is a ColumnTypeError. count returns the number
// of non-empty values, sum of an empty selection is 0, and avg/min/max over
// an empty selection fail naming the column.
func (g *Group) Aggregate(column string, op AggOp, pred Predicate) (float64, error) {
	idx := g.Schema.Index(column)
	if idx < 0 {
		return 0, &ValidationError{Column: column, Msg: "no such column"}
	}
	if g.Schema[idx].Type != models.TypeNumber {
		return 0, &ColumnTypeError{Column: column, Type: g.Schema[idx].Type}
	}

	var sum, min, max float64
	count := 0

	for row := range g.Search(pred) {
		if idx >= len(row) || row[idx].Empty() {
			continue
		}
		n := row[idx].Num
		if count == 0 {
			min, max = n, n
		} else {
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		sum += n
		count++
	}

	switch op {
	case OpCount:
		return float64(count), nil
	case OpSum:
		return sum, nil
	case OpAvg:
		if count == 0 {
			return 0, &ValidationError{Column: column, Msg: "no values to average"}
		}
		return sum / float64(count), nil
	case OpMin, OpMax:
		if count == 0 {
			return 0, &ValidationError{Column: column, Msg: fmt.Sprintf("no values for %s", op)}
		}
		if op == OpMin {
			return min, nil
		}
		return max, nil
	default:
		return 0, Usagef("unknown op %q", op)
	}
}
