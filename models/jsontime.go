package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSONTime wraps time.Time so we can control both JSON un/marshaling and SQL
// driver encoding. The mobile app and the portal send dates in several
// shapes, so parsing is lenient.
type JSONTime time.Time

func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		return nil
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			*jt = JSONTime(t)
			return nil
		}
	}
	return fmt.Errorf("JSONTime.UnmarshalJSON: cannot parse %q", s)
}

func (jt JSONTime) MarshalJSON() ([]byte, error) {
	t := time.Time(jt)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

func (jt JSONTime) Value() (driver.Value, error) {
	t := time.Time(jt)
	if t.IsZero() {
		return nil, nil
	}
	return t, nil
}

func (jt *JSONTime) Scan(value interface{}) error {
	if value == nil {
		*jt = JSONTime(time.Time{})
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("JSONTime.Scan: unsupported type %T", value)
	}
	*jt = JSONTime(t)
	return nil
}

// Time returns the wrapped time.Time.
func (jt JSONTime) Time() time.Time {
	return time.Time(jt)
}
