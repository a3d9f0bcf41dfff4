package sqlite

import (
	"database/sql"

	"mooring/internal/domain"
)

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullToIntPtr converts sql.NullInt64 to *int
func nullToIntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// intPtrToNull converts *int to sql.NullInt64
func intPtrToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// linePtrToNull converts an optional attached line to sql.NullString
func linePtrToNull(l *domain.AttachedLine) sql.NullString {
	if l == nil {
		return sql.NullString{}
	}
	return stringToNull(string(*l))
}

// nullToLinePtr converts sql.NullString to an optional attached line
func nullToLinePtr(ns sql.NullString) *domain.AttachedLine {
	if s := nullToString(ns); s != "" {
		return domain.AttachedLine(s).Ptr()
	}
	return nil
}

// boolToInt stores a bool as 0 or 1
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
