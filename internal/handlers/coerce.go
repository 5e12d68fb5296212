package handlers

import (
  "fmt"
  "strconv"
  "strings"
)

// coerceInt accepts the loosely-typed numerics the frontend sends: JSON
// numbers, numeric strings, and whole-valued floats all coerce to int.
func coerceInt(v any) (int, error) {
  switch value := v.(type) {
  case nil:
    return 0, fmt.Errorf("value is missing")
  case float64:
    return int(value), nil
  case int:
    return value, nil
  case string:
    trimmed := strings.TrimSpace(value)
    if trimmed == "" {
      return 0, fmt.Errorf("value is empty")
    }
    if parsed, err := strconv.Atoi(trimmed); err == nil {
      return parsed, nil
    }
    if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
      return int(parsed), nil
    }
    return 0, fmt.Errorf("value %q is not numeric", value)
  default:
    return 0, fmt.Errorf("value has unsupported type %T", v)
  }
}

// coerceFloat is coerceInt's fractional counterpart, used for grades.
func coerceFloat(v any) (float64, error) {
  switch value := v.(type) {
  case nil:
    return 0, fmt.Errorf("value is missing")
  case float64:
    return value, nil
  case int:
    return float64(value), nil
  case string:
    trimmed := strings.TrimSpace(value)
    if trimmed == "" {
      return 0, fmt.Errorf("value is empty")
    }
    parsed, err := strconv.ParseFloat(trimmed, 64)
    if err != nil {
      return 0, fmt.Errorf("value %q is not numeric", value)
    }
    return parsed, nil
  default:
    return 0, fmt.Errorf("value has unsupported type %T", v)
  }
}

// coerceString renders loosely-typed scalar fields (grades, attendance) to
// their stored string form.
func coerceString(v any) string {
  switch value := v.(type) {
  case nil:
    return ""
  case string:
    return strings.TrimSpace(value)
  case float64:
    return strconv.FormatFloat(value, 'g', -1, 64)
  default:
    return fmt.Sprintf("%v", value)
  }
}
