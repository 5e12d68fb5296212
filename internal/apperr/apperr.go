package apperr

import (
  "errors"
  "fmt"
  "net/http"
)

var (
  // ErrNotFound is the sentinel for an unknown username or missing resource.
  ErrNotFound = errors.New("not found")
  // ErrConflict is the sentinel for duplicate-key writes (username taken).
  ErrConflict = errors.New("conflict")
  // ErrInvalidArgument is the sentinel for missing or malformed input.
  ErrInvalidArgument = errors.New("invalid argument")
  // ErrUnauthorized is the sentinel for bad credentials or tokens.
  ErrUnauthorized = errors.New("unauthorized")
  // ErrUpstream is the sentinel for a failed or unusable text-generation call.
  ErrUpstream = errors.New("upstream failure")
)

func NotFound(format string, args ...any) error {
  return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func Conflict(format string, args ...any) error {
  return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

func InvalidArgument(format string, args ...any) error {
  return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func Unauthorized(format string, args ...any) error {
  return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthorized)
}

func Upstream(format string, args ...any) error {
  return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUpstream)
}

// Message strips the sentinel suffix from an error so responses carry only
// the human-readable part.
func Message(err error) string {
  if err == nil {
    return ""
  }
  msg := err.Error()
  for _, sentinel := range []error{ErrNotFound, ErrConflict, ErrInvalidArgument, ErrUnauthorized, ErrUpstream} {
    suffix := ": " + sentinel.Error()
    if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
      return msg[:len(msg)-len(suffix)]
    }
  }
  return msg
}

// HTTPStatus maps a service error onto the outward status code. Unknown
// errors surface as 500.
func HTTPStatus(err error) int {
  switch {
  case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrConflict):
    return http.StatusBadRequest
  case errors.Is(err, ErrNotFound):
    return http.StatusNotFound
  case errors.Is(err, ErrUnauthorized):
    return http.StatusUnauthorized
  case errors.Is(err, ErrUpstream):
    return http.StatusBadGateway
  default:
    return http.StatusInternalServerError
  }
}
