package store

import (
	"fmt"
	"strings"

	"github.com/Kai-Rice/study-log/internal/models"
)

type filterOp int

const (
	opEq filterOp = iota
	opNe
	opGt
	opGe
	opLt
	opLe
	opBetween
)

// operator tokens, longest first so ">=" is not read as ">"
var opTokens = []struct {
	token string
	op    filterOp
}{
	{">=", opGe},
	{"<=", opLe},
	{"!=", opNe},
	{">", opGt},
	{"<", opLt},
	{"=", opEq},
}

// Filter is one compiled --filter expression bound to a group's schema.
// Supported forms:
//
//	col=value   col!=value            (any column type)
//	col>n  col>=n  col<n  col<=n      (number and date columns)
//	col between a and b               (number and date columns, inclusive)
//
// Empty cells never match a filter.
type Filter struct {
	column string
	index  int
	typ    models.ColumnType
	op     filterOp
	lo     models.Value
	hi     models.Value
}

// ParseFilter compiles a filter expression against the group's schema.
// Malformed expressions are UsageErrors; references to unknown columns,
// operators the column type does not support, and bounds that do not parse
// as the column's type are ValidationErrors naming the column.
func ParseFilter(expr string, schema models.Schema) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, Usagef("empty filter expression")
	}

	if name, lo, hi, ok := splitBetween(expr); ok {
		return newFilter(schema, name, opBetween, lo, hi)
	}

	for _, t := range opTokens {
		if idx := strings.Index(expr, t.token); idx > 0 {
			name := expr[:idx]
			value := expr[idx+len(t.token):]
			return newFilter(schema, name, t.op, value, "")
		}
	}

	return nil, Usagef("filter %q: expected col=value, col!=value, a comparison, or 'col between a and b'", expr)
}

// splitBetween recognizes "col between a and b" (case-insensitive keywords).
func splitBetween(expr string) (name, lo, hi string, ok bool) {
	lower := strings.ToLower(expr)
	bidx := strings.Index(lower, " between ")
	if bidx <= 0 {
		return "", "", "", false
	}
	rest := expr[bidx+len(" between "):]
	aidx := strings.Index(strings.ToLower(rest), " and ")
	if aidx <= 0 {
		return "", "", "", false
	}
	return expr[:bidx], rest[:aidx], rest[aidx+len(" and "):], true
}

func newFilter(schema models.Schema, name string, op filterOp, lo, hi string) (*Filter, error) {
	name = strings.TrimSpace(name)
	lo = strings.TrimSpace(lo)
	hi = strings.TrimSpace(hi)

	idx := schema.Index(name)
	if idx < 0 {
		return nil, &ValidationError{Column: name, Msg: "no such column"}
	}
	typ := schema[idx].Type

	if typ == models.TypeText && op != opEq && op != opNe {
		return nil, &ValidationError{Column: name, Msg: "text columns only support = and !="}
	}

	if lo == "" || (op == opBetween && hi == "") {
		return nil, Usagef("filter on %q is missing a value", name)
	}

	f := &Filter{column: name, index: idx, typ: typ, op: op}

	var err error
	if f.lo, err = models.ParseValue(lo, typ); err != nil {
		return nil, &ValidationError{Column: name, Msg: fmt.Sprintf("value %q is %v", lo, err)}
	}
	if op == opBetween {
		if f.hi, err = models.ParseValue(hi, typ); err != nil {
			return nil, &ValidationError{Column: name, Msg: fmt.Sprintf("value %q is %v", hi, err)}
		}
	}

	return f, nil
}

// Match reports whether the row satisfies the filter.
func (f *Filter) Match(row models.Row) bool {
	if f.index >= len(row) {
		return false
	}
	v := row[f.index]
	if v.Empty() {
		return false
	}

	switch f.typ {
	case models.TypeNumber:
		return matchOrdered(f.op, compareFloats(v.Num, f.lo.Num), compareFloats(v.Num, f.hi.Num))
	case models.TypeDate:
		return matchOrdered(f.op, v.Date.Compare(f.lo.Date), v.Date.Compare(f.hi.Date))
	default:
		if f.op == opNe {
			return v.Raw != f.lo.Raw
		}
		return v.Raw == f.lo.Raw
	}
}

// matchOrdered evaluates an operator given the row value's comparison
// against the low and high bounds (cmpHi is only meaningful for between).
func matchOrdered(op filterOp, cmpLo, cmpHi int) bool {
	switch op {
	case opEq:
		return cmpLo == 0
	case opNe:
		return cmpLo != 0
	case opGt:
		return cmpLo > 0
	case opGe:
		return cmpLo >= 0
	case opLt:
		return cmpLo < 0
	case opLe:
		return cmpLo <= 0
	case opBetween:
		return cmpLo >= 0 && cmpHi <= 0
	default:
		return false
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseFilters compiles a list of expressions and ANDs them into a single
// predicate. An empty list yields a nil predicate (match all).
func ParseFilters(exprs []string, schema models.Schema) (Predicate, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	filters := make([]*Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := ParseFilter(expr, schema)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	return func(row models.Row) bool {
		for _, f := range filters {
			if !f.Match(row) {
				return false
			}
		}
		return true
	}, nil
}
