package domain

import (
	"strconv"
	"time"
)

// ValueKind tags a cell value so downstream code can switch exhaustively
// instead of probing an untyped bag.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// CellValue is a tagged cell value. The Row Parser only ever produces
// KindString and KindAbsent; the other kinds exist for readers that
// reinterpret cells after type detection.
type CellValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Date time.Time
}

// Absent returns the absent/null cell value
func Absent() CellValue {
	return CellValue{Kind: KindAbsent}
}

// String wraps a raw string cell
func String(s string) CellValue {
	return CellValue{Kind: KindString, Str: s}
}

// Number wraps a numeric cell
func Number(f float64) CellValue {
	return CellValue{Kind: KindNumber, Num: f}
}

// Bool wraps a boolean cell
func Bool(b bool) CellValue {
	return CellValue{Kind: KindBool, Bool: b}
}

// Date wraps a date cell
func Date(t time.Time) CellValue {
	return CellValue{Kind: KindDate, Date: t}
}

// IsAbsent reports whether the cell is null/empty
func (v CellValue) IsAbsent() bool {
	return v.Kind == KindAbsent || (v.Kind == KindString && v.Str == "")
}

// AsString coerces the cell to its string form; an absent cell becomes the
// empty string.
func (v CellValue) AsString() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}
