package apierr

import (
  "errors"
  "fmt"
  "net/http"
)

// Machine-checkable error kinds. Handlers map Status to HTTP codes; clients
// branch on Code.
const (
  KindUnknownDomain        = "unknown_domain"
  KindLimitExceeded        = "limit_exceeded"
  KindTransientUnavailable = "transient_unavailable"
  KindQuotaExceeded        = "quota_exceeded"
  KindMalformedResponse    = "malformed_response"
  KindEmptyValidBatch      = "empty_valid_batch"
  KindRefreshIncomplete    = "refresh_incomplete"
  KindNotFound             = "not_found"
  KindForbidden            = "forbidden"
)

type Error struct {
  Status int
  Code   string
  Err    error
}

func (e *Error) Error() string {
  if e == nil {
    return ""
  }
  if e.Err != nil {
    return e.Err.Error()
  }
  if e.Code != "" {
    return e.Code
  }
  if e.Status != 0 {
    return fmt.Sprintf("api error (%d)", e.Status)
  }
  return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
  return &Error{Status: status, Code: code, Err: err}
}

func UnknownDomain(domain string) *Error {
  return New(http.StatusBadRequest, KindUnknownDomain, fmt.Errorf("unknown domain %q", domain))
}

func LimitExceeded(format string, args ...any) *Error {
  return New(http.StatusBadRequest, KindLimitExceeded, fmt.Errorf(format, args...))
}

func TransientUnavailable(err error) *Error {
  return New(http.StatusServiceUnavailable, KindTransientUnavailable, err)
}

func QuotaExceeded(err error) *Error {
  return New(http.StatusTooManyRequests, KindQuotaExceeded, err)
}

func MalformedResponse(err error) *Error {
  return New(http.StatusBadGateway, KindMalformedResponse, err)
}

func EmptyValidBatch(rejected int) *Error {
  return New(http.StatusBadGateway, KindEmptyValidBatch, fmt.Errorf("all %d generated records failed validation", rejected))
}

func RefreshIncomplete(domain string, cause error) *Error {
  return New(http.StatusBadGateway, KindRefreshIncomplete, fmt.Errorf("domain %s deleted but regeneration failed: %w", domain, cause))
}

func NotFound(err error) *Error {
  return New(http.StatusNotFound, KindNotFound, err)
}

func Forbidden(err error) *Error {
  return New(http.StatusForbidden, KindForbidden, err)
}

// KindOf returns the code of the outermost *Error in err's chain, or "".
func KindOf(err error) string {
  var ae *Error
  if errors.As(err, &ae) {
    return ae.Code
  }
  return ""
}

// StatusOf returns the HTTP status of err, defaulting to 500.
func StatusOf(err error) int {
  var ae *Error
  if errors.As(err, &ae) && ae.Status != 0 {
    return ae.Status
  }
  return http.StatusInternalServerError
}
