package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var envelopeKeys = []string{"data", "items", "results"}

// FlexList unmarshals from a JSON array, a single object, or an object
// wrapping the array under "data", "items" or "results".
type FlexList[T any] []T

func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexList[T](slice)
		return nil
	}

	if data[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err == nil {
			for _, key := range envelopeKeys {
				if inner, ok := envelope[key]; ok && len(inner) > 0 && inner[0] == '[' {
					return f.UnmarshalJSON(inner)
				}
			}
		}
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*f = FlexList[T]{item}
	return nil
}

func (f FlexList[T]) Slice() []T {
	return []T(f)
}

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		val, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("FlexInt: invalid int string %q: %w", s, err)
		}
		*f = FlexInt(val)
		return nil
	}

	return fmt.Errorf("FlexInt: unexpected type, expected number or string")
}

func (f FlexInt) Int() int {
	return int(f)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime accepts the handful of timestamp layouts the backend emits.
type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || strings.TrimSpace(s) == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return fmt.Errorf("FlexTime: unsupported timestamp %q", s)
}

// FirstInt returns the first non-nil id among candidates.
func FirstInt(candidates ...*FlexInt) int {
	for _, c := range candidates {
		if c != nil {
			return c.Int()
		}
	}
	return 0
}

// FirstString returns the first non-empty string among candidates.
func FirstString(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// FirstTime returns the first non-zero time among candidates.
func FirstTime(candidates ...*FlexTime) time.Time {
	for _, c := range candidates {
		if c != nil && !c.IsZero() {
			return c.Time
		}
	}
	return time.Time{}
}
