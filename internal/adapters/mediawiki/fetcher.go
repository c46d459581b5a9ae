// Package mediawiki talks to the remote wiki: a rod-driven headless
// browser logs in through the standard login form and scrapes the
// watchlist, and a plain HTTP client answers last-modified lookups.
package mediawiki

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"vedetta/internal/application"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// Login form element IDs, stable across MediaWiki skins.
const (
	usernameSelector    = "#wpName1"
	passwordSelector    = "#wpPassword1"
	loginButtonSelector = "#wpLoginAttempt"
	changeslistSelector = ".mw-changeslist"
)

const (
	loginPath     = "/index.php?title=Special:UserLogin&returnto=Special:Watchlist"
	watchlistPath = "/wiki/Special:Watchlist"
)

// Config configures the watchlist fetcher.
type Config struct {
	// BaseURL of the wiki, without trailing slash (e.g.
	// "https://en.wikipedia.org").
	BaseURL string

	// Headless runs the browser without a window. Default: true.
	Headless bool

	// NavTimeout bounds each navigation and element wait. Default: 30s.
	NavTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Fetcher implements ports.WatchlistFetcher against a live wiki.
type Fetcher struct {
	cfg Config
}

// Ensure Fetcher implements WatchlistFetcher
var _ ports.WatchlistFetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher. Headless defaults to true unless the
// config says otherwise.
func NewFetcher(cfg Config) *Fetcher {
	cfg.defaults()
	return &Fetcher{cfg: cfg}
}

// session holds the live browser behind an authenticated login.
type session struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	page    *rod.Page
}

// Close shuts the browser down and reaps the launched process.
func (s *session) Close() error {
	err := s.browser.Close()
	s.lnch.Cleanup()
	return err
}

// Authenticate launches a browser, submits the login form once, and
// fails with an AuthError if the wiki bounces back to the login page.
func (f *Fetcher) Authenticate(ctx context.Context, creds ports.Credentials) (ports.Session, error) {
	lnch := launcher.New().Headless(f.cfg.Headless)
	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("mediawiki: launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		lnch.Cleanup()
		return nil, fmt.Errorf("mediawiki: connect browser: %w", err)
	}

	s := &session{browser: browser, lnch: lnch}

	page, err := stealth.Page(browser)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("mediawiki: create page: %w", err)
	}
	s.page = page

	if err := f.login(ctx, page, creds); err != nil {
		s.Close()
		return nil, err
	}

	f.cfg.Logger.Info("mediawiki: logged in", "user", creds.Username, "wiki", f.cfg.BaseURL)
	return s, nil
}

func (f *Fetcher) login(ctx context.Context, page *rod.Page, creds ports.Credentials) error {
	navCtx, cancel := context.WithTimeout(ctx, f.cfg.NavTimeout)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(f.cfg.BaseURL + loginPath); err != nil {
		return fmt.Errorf("mediawiki: navigate to login: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("mediawiki: load login page: %w", err)
	}

	if err := fillField(p, usernameSelector, creds.Username); err != nil {
		return err
	}
	if err := fillField(p, passwordSelector, creds.Password); err != nil {
		return err
	}

	button, err := p.Element(loginButtonSelector)
	if err != nil {
		return fmt.Errorf("mediawiki: find login button: %w", err)
	}
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("mediawiki: click login: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("mediawiki: load post-login page: %w", err)
	}

	// A rejected login lands back on Special:UserLogin.
	info, err := p.Info()
	if err != nil {
		return fmt.Errorf("mediawiki: read page info: %w", err)
	}
	if strings.Contains(info.URL, "Special:UserLogin") {
		return &application.AuthError{
			Username: creds.Username,
			Err:      fmt.Errorf("wiki returned to the login page"),
		}
	}
	return nil
}

func fillField(p *rod.Page, selector, value string) error {
	field, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("mediawiki: find field %s: %w", selector, err)
	}
	if err := field.Input(value); err != nil {
		return fmt.Errorf("mediawiki: fill field %s: %w", selector, err)
	}
	return nil
}

// ListWatched navigates to the watchlist, waits for the changes list,
// and parses it. A watchlist without a changes list is empty, not an
// error: a fresh account legitimately has nothing to show.
func (f *Fetcher) ListWatched(ctx context.Context, sess ports.Session) ([]domain.WatchlistCandidate, error) {
	s, ok := sess.(*session)
	if !ok {
		return nil, fmt.Errorf("mediawiki: session was not created by this fetcher")
	}

	navCtx, cancel := context.WithTimeout(ctx, f.cfg.NavTimeout)
	defer cancel()
	p := s.page.Context(navCtx)

	if err := p.Navigate(f.cfg.BaseURL + watchlistPath); err != nil {
		return nil, &application.FetchError{Err: fmt.Errorf("navigate to watchlist: %w", err)}
	}
	if err := p.WaitLoad(); err != nil {
		return nil, &application.FetchError{Err: fmt.Errorf("load watchlist: %w", err)}
	}

	list, err := p.Element(changeslistSelector)
	if err != nil {
		f.cfg.Logger.Info("mediawiki: watchlist has no changes list, treating as empty")
		return nil, nil
	}

	markup, err := list.HTML()
	if err != nil {
		return nil, &application.FetchError{Err: fmt.Errorf("read watchlist markup: %w", err)}
	}

	candidates, err := ParseWatchlist(markup)
	if err != nil {
		return nil, &application.FetchError{Err: err}
	}

	f.cfg.Logger.Info("mediawiki: fetched watchlist", "entries", len(candidates))
	return candidates, nil
}
