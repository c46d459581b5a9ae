// Package sysbrowser opens pages in the user's default web browser via
// the platform launcher (xdg-open, open, or cmd start).
package sysbrowser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"vedetta/internal/application"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// Opener implements ports.PageOpener
type Opener struct {
	baseURL  string
	launcher []string
}

// Ensure Opener implements PageOpener
var _ ports.PageOpener = (*Opener)(nil)

// NewOpener creates an opener for the given wiki base URL. It resolves
// the platform launcher up front so a missing launcher surfaces before
// the first page, not in the middle of a batch.
func NewOpener(baseURL string) (*Opener, error) {
	launcher, err := launcherCommand()
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(launcher[0]); err != nil {
		return nil, fmt.Errorf("sysbrowser: launcher %s not found: %w", launcher[0], err)
	}
	return &Opener{baseURL: baseURL, launcher: launcher}, nil
}

// Open builds the diff URL for the candidate and hands it to the
// launcher. A non-zero launcher exit is page-scoped; a launcher that
// can no longer start at all aborts the run.
func (o *Opener) Open(ctx context.Context, cand domain.WatchlistCandidate) error {
	target, err := o.BuildURL(cand.DiffURL)
	if err != nil {
		return &application.PageOpenError{Page: string(cand.Name), Err: err}
	}

	args := append(append([]string{}, o.launcher[1:]...), target)
	cmd := exec.CommandContext(ctx, o.launcher[0], args...)
	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(o.launcher[0]); lookErr != nil {
			return &application.BrowserError{Err: lookErr}
		}
		return &application.PageOpenError{Page: string(cand.Name), Err: err}
	}
	return nil
}

// BuildURL resolves the entry's diff href against the wiki base URL and
// forces diff=0, which shows all changes since the page was last seen
// rather than only the newest revision.
func (o *Opener) BuildURL(diffHref string) (string, error) {
	base, err := url.Parse(o.baseURL)
	if err != nil {
		return "", fmt.Errorf("sysbrowser: invalid base URL: %w", err)
	}
	ref, err := url.Parse(diffHref)
	if err != nil {
		return "", fmt.Errorf("sysbrowser: invalid diff href: %w", err)
	}

	target := base.ResolveReference(ref)
	q := target.Query()
	q.Set("diff", "0")
	target.RawQuery = q.Encode()
	return target.String(), nil
}

func launcherCommand() ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}, nil
	case "linux":
		return []string{"xdg-open"}, nil
	case "windows":
		return []string{"cmd", "/c", "start", ""}, nil
	default:
		return nil, fmt.Errorf("sysbrowser: unsupported operating system: %s", runtime.GOOS)
	}
}
