package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vedetta/internal/application"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// --- fakes ---

type fakeSession struct {
	closed bool
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeFetcher struct {
	candidates []domain.WatchlistCandidate
	authErr    error
	fetchErr   error
	session    *fakeSession
}

func (f *fakeFetcher) Authenticate(ctx context.Context, creds ports.Credentials) (ports.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.session = &fakeSession{}
	return f.session, nil
}

func (f *fakeFetcher) ListWatched(ctx context.Context, session ports.Session) ([]domain.WatchlistCandidate, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.candidates, nil
}

type fakeOpener struct {
	opened []domain.PageName
	errOn  map[domain.PageName]error
}

func (o *fakeOpener) Open(ctx context.Context, cand domain.WatchlistCandidate) error {
	if err, ok := o.errOn[cand.Name]; ok {
		return err
	}
	o.opened = append(o.opened, cand.Name)
	return nil
}

type memHistory struct {
	events    []domain.OpenEvent
	queryErr  error
	recordErr error
}

func (h *memHistory) Open(path string) error { return nil }
func (h *memHistory) Close() error           { return nil }

func (h *memHistory) HasBeenOpened(name domain.PageName) (bool, error) {
	if h.queryErr != nil {
		return false, h.queryErr
	}
	for _, e := range h.events {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (h *memHistory) RecordOpen(name domain.PageName, at time.Time) error {
	if h.recordErr != nil {
		return h.recordErr
	}
	h.events = append(h.events, domain.OpenEvent{Name: name, OpenedAt: at})
	return nil
}

func (h *memHistory) Aggregate(opts ports.AggregateOptions) ([]domain.PageActivity, error) {
	return nil, nil
}

func (h *memHistory) RecentOpens(limit int) ([]domain.OpenEvent, error) {
	return nil, nil
}

// --- helpers ---

func unseen(name string) domain.WatchlistCandidate {
	return domain.WatchlistCandidate{
		Name:            domain.PageName(name),
		DiffURL:         "/w/index.php?title=" + name + "&diff=1",
		HasUnseenChange: true,
	}
}

func seen(name string) domain.WatchlistCandidate {
	c := unseen(name)
	c.HasUnseenChange = false
	return c
}

func newTriage(history ports.HistoryStore, fetcher ports.WatchlistFetcher, opener ports.PageOpener, batchSize int) *TriageCommand {
	creds := ports.Credentials{Username: "user", Password: "pass"}
	return NewTriageCommand(history, fetcher, opener, nil, creds, batchSize)
}

func names(pages ...string) []domain.PageName {
	var out []domain.PageName
	for _, p := range pages {
		out = append(out, domain.PageName(p))
	}
	return out
}

func equalNames(a, b []domain.PageName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- tests ---

func TestTriageCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		username  string
		wantErr   bool
	}{
		{name: "valid", batchSize: 5, username: "user"},
		{name: "zero batch size", batchSize: 0, username: "user", wantErr: true},
		{name: "negative batch size", batchSize: -1, username: "user", wantErr: true},
		{name: "missing username", batchSize: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTriage(&memHistory{}, &fakeFetcher{}, &fakeOpener{}, tt.batchSize)
			cmd.Credentials.Username = tt.username
			err := cmd.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTriageCommand_EmptyWatchlist(t *testing.T) {
	history := &memHistory{}
	cmd := newTriage(history, &fakeFetcher{}, &fakeOpener{}, 5)

	summary, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Opened) != 0 {
		t.Errorf("expected zero opens, got %d", len(summary.Opened))
	}
	if len(history.events) != 0 {
		t.Errorf("expected zero events, got %d", len(history.events))
	}
}

func TestTriageCommand_FiltersAndPreservesOrder(t *testing.T) {
	// Watchlist [A(unseen), B(no change), C(unseen)], batch 2, empty
	// history: opens A then C, never touches B.
	history := &memHistory{}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("A"), seen("B"), unseen("C"),
	}}
	opener := &fakeOpener{}

	summary, err := newTriage(history, fetcher, opener, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalNames(opener.opened, names("A", "C")) {
		t.Errorf("expected opens [A C], got %v", opener.opened)
	}
	if len(history.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(history.events))
	}
	if summary.SkippedNoChange != 1 {
		t.Errorf("expected 1 skipped without change, got %d", summary.SkippedNoChange)
	}
}

func TestTriageCommand_SkipsAlreadyOpened(t *testing.T) {
	history := &memHistory{events: []domain.OpenEvent{
		{Name: "A", OpenedAt: time.Now()},
	}}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("A"), seen("B"), unseen("C"),
	}}
	opener := &fakeOpener{}

	summary, err := newTriage(history, fetcher, opener, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalNames(opener.opened, names("C")) {
		t.Errorf("expected opens [C], got %v", opener.opened)
	}
	if summary.SkippedSeen != 1 {
		t.Errorf("expected 1 skipped as seen, got %d", summary.SkippedSeen)
	}
}

func TestTriageCommand_BatchBound(t *testing.T) {
	history := &memHistory{}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("A"), unseen("B"), unseen("C"), unseen("D"), unseen("E"),
	}}
	opener := &fakeOpener{}

	summary, err := newTriage(history, fetcher, opener, 3).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalNames(opener.opened, names("A", "B", "C")) {
		t.Errorf("expected opens [A B C], got %v", opener.opened)
	}
	if len(history.events) != 3 {
		t.Errorf("expected 3 events, got %d", len(history.events))
	}
	if summary.LeftUnopened != 2 {
		t.Errorf("expected 2 left unopened, got %d", summary.LeftUnopened)
	}
}

func TestTriageCommand_Idempotence(t *testing.T) {
	// Second run over an unchanged watchlist opens nothing.
	history := &memHistory{}
	candidates := []domain.WatchlistCandidate{unseen("A"), unseen("B")}

	first := &fakeOpener{}
	if _, err := newTriage(history, &fakeFetcher{candidates: candidates}, first, 5).Execute(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first.opened) != 2 {
		t.Fatalf("first run: expected 2 opens, got %d", len(first.opened))
	}

	second := &fakeOpener{}
	summary, err := newTriage(history, &fakeFetcher{candidates: candidates}, second, 5).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.opened) != 0 {
		t.Errorf("second run: expected zero opens, got %v", second.opened)
	}
	if summary.SkippedSeen != 2 {
		t.Errorf("second run: expected 2 skipped as seen, got %d", summary.SkippedSeen)
	}
	if len(history.events) != 2 {
		t.Errorf("expected history unchanged at 2 events, got %d", len(history.events))
	}
}

func TestTriageCommand_PageFailureContinues(t *testing.T) {
	history := &memHistory{}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("A"), unseen("B"), unseen("C"),
	}}
	opener := &fakeOpener{errOn: map[domain.PageName]error{
		"B": &application.PageOpenError{Page: "B", Err: fmt.Errorf("tab refused")},
	}}

	summary, err := newTriage(history, fetcher, opener, 3).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equalNames(opener.opened, names("A", "C")) {
		t.Errorf("expected opens [A C], got %v", opener.opened)
	}
	if !equalNames(summary.Failed, names("B")) {
		t.Errorf("expected failed [B], got %v", summary.Failed)
	}
	// B must not be recorded: a later run should offer it again.
	if recorded, _ := history.HasBeenOpened("B"); recorded {
		t.Error("failed page must not be recorded")
	}
}

func TestTriageCommand_BrowserFatalKeepsPrefix(t *testing.T) {
	history := &memHistory{}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("P1"), unseen("P2"), unseen("P3"), unseen("P4"),
	}}
	opener := &fakeOpener{errOn: map[domain.PageName]error{
		"P3": &application.BrowserError{Err: fmt.Errorf("session died")},
	}}

	summary, err := newTriage(history, fetcher, opener, 4).Execute(context.Background())
	if !errors.Is(err, application.ErrBrowserGone) {
		t.Fatalf("expected browser-gone error, got %v", err)
	}

	// Exactly the prefix P1, P2 is recorded.
	if !equalNames(summary.Opened, names("P1", "P2")) {
		t.Errorf("expected recorded prefix [P1 P2], got %v", summary.Opened)
	}
	if len(history.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(history.events))
	}

	// A later run re-offers only the tail.
	retry := &fakeOpener{}
	if _, err := newTriage(history, fetcher, retry, 4).Execute(context.Background()); err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if !equalNames(retry.opened, names("P3", "P4")) {
		t.Errorf("retry run: expected opens [P3 P4], got %v", retry.opened)
	}
}

func TestTriageCommand_AuthFailureMutatesNothing(t *testing.T) {
	history := &memHistory{}
	fetcher := &fakeFetcher{
		authErr:    &application.AuthError{Username: "user", Err: fmt.Errorf("bad password")},
		candidates: []domain.WatchlistCandidate{unseen("A")},
	}

	_, err := newTriage(history, fetcher, &fakeOpener{}, 5).Execute(context.Background())
	if !errors.Is(err, application.ErrAuthFailed) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if len(history.events) != 0 {
		t.Errorf("expected no events after auth failure, got %d", len(history.events))
	}
}

func TestTriageCommand_FetchFailureZeroOpens(t *testing.T) {
	history := &memHistory{}
	fetcher := &fakeFetcher{fetchErr: fmt.Errorf("network down")}

	summary, err := newTriage(history, fetcher, &fakeOpener{}, 5).Execute(context.Background())
	if !errors.Is(err, application.ErrFetchFailed) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(summary.Opened) != 0 || len(history.events) != 0 {
		t.Error("expected zero opens after fetch failure")
	}
}

func TestTriageCommand_StoreFailureAborts(t *testing.T) {
	history := &memHistory{recordErr: fmt.Errorf("disk full")}
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{
		unseen("A"), unseen("B"),
	}}
	opener := &fakeOpener{}

	_, err := newTriage(history, fetcher, opener, 5).Execute(context.Background())
	if !errors.Is(err, application.ErrStoreFailed) {
		t.Fatalf("expected store error, got %v", err)
	}
	// The run must stop at the first unrecordable open: B is never
	// opened as if A's event had been durable.
	if !equalNames(opener.opened, names("A")) {
		t.Errorf("expected only A opened before abort, got %v", opener.opened)
	}
}

func TestTriageCommand_ClosesSession(t *testing.T) {
	fetcher := &fakeFetcher{candidates: []domain.WatchlistCandidate{unseen("A")}}
	if _, err := newTriage(&memHistory{}, fetcher, &fakeOpener{}, 1).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.session == nil || !fetcher.session.closed {
		t.Error("expected session to be closed after the run")
	}
}
