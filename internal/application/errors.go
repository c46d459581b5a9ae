package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy of a triage run
var (
	ErrAuthFailed  = errors.New("authentication failed")
	ErrFetchFailed = errors.New("watchlist fetch failed")
	ErrBrowserGone = errors.New("browser unusable")
	ErrStoreFailed = errors.New("history store failure")
)

// AuthError is a rejected login. Fatal: the run terminates before any
// state mutation.
type AuthError struct {
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login rejected for %s: %v", e.Username, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuthFailed }

// FetchError is a failed watchlist retrieval. Fatal: the run ends with
// zero opens.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot fetch watchlist: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// PageOpenError is a failure to open a single page. Non-fatal: the page
// is skipped, nothing is recorded for it, and the run continues.
type PageOpenError struct {
	Page string
	Err  error
}

func (e *PageOpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Page, e.Err)
}

func (e *PageOpenError) Unwrap() error { return e.Err }

// BrowserError means the opener itself became unusable. Fatal: the run
// aborts and the already-recorded prefix of opens stands.
type BrowserError struct {
	Err error
}

func (e *BrowserError) Error() string {
	return fmt.Sprintf("browser unusable: %v", e.Err)
}

func (e *BrowserError) Unwrap() error { return e.Err }

func (e *BrowserError) Is(target error) bool { return target == ErrBrowserGone }

// StoreError is a failed history operation. Fatal: proceeding as if the
// event were recorded would break the never-reopen guarantee.
type StoreError struct {
	Op   string // "open", "record", "query"
	Page string // empty when not page-scoped
	Err  error
}

func (e *StoreError) Error() string {
	if e.Page != "" {
		return fmt.Sprintf("history %s for %s: %v", e.Op, e.Page, e.Err)
	}
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreFailed }
