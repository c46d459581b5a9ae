package mediawiki

import (
	"strings"
	"testing"
)

const sampleWatchlist = `
<ul class="mw-changeslist">
  <li class="mw-changeslist-line mw-changeslist-line-watched">
    <a class="mw-changeslist-diff" title="Alan Turing"
       href="/w/index.php?title=Alan_Turing&amp;curid=1208&amp;diff=1290&amp;oldid=1171">diff</a>
    <a class="mw-userlink" title="User:Ada" href="/wiki/User:Ada">Ada</a>
    <span class="mw-diff-bytes">+1,204</span>
  </li>
  <li class="mw-changeslist-line mw-changeslist-line-not-watched">
    <a class="mw-changeslist-diff" title="Lambda calculus"
       href="/w/index.php?title=Lambda_calculus&amp;diff=900&amp;oldid=880">diff</a>
    <a class="mw-userlink" title="User:Alonzo" href="/wiki/User:Alonzo">Alonzo</a>
    <span class="mw-diff-bytes">-56</span>
  </li>
  <li class="mw-changeslist-line mw-changeslist-line-watched">
    <a class="mw-changeslist-diff" title="Talk:Alan Turing"
       href="/w/index.php?title=Talk:Alan_Turing&amp;diff=77&amp;oldid=70">diff</a>
  </li>
</ul>`

func TestParseWatchlist(t *testing.T) {
	candidates, err := ParseWatchlist(sampleWatchlist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.Name != "Alan Turing" {
		t.Errorf("expected name Alan Turing, got %q", first.Name)
	}
	if !first.HasUnseenChange {
		t.Error("watched line must count as unseen change")
	}
	if !strings.Contains(first.DiffURL, "diff=1290") {
		t.Errorf("unexpected diff URL: %q", first.DiffURL)
	}
	if first.Editor != "User:Ada" {
		t.Errorf("expected editor User:Ada, got %q", first.Editor)
	}
	if first.ByteDiff != "+1,204" {
		t.Errorf("expected byte diff +1,204, got %q", first.ByteDiff)
	}

	second := candidates[1]
	if second.HasUnseenChange {
		t.Error("not-watched line must not count as unseen change")
	}

	// Namespace prefix carries verbatim.
	if candidates[2].Name != "Talk:Alan Turing" {
		t.Errorf("expected Talk:Alan Turing, got %q", candidates[2].Name)
	}
}

func TestParseWatchlist_Empty(t *testing.T) {
	candidates, err := ParseWatchlist(`<ul class="mw-changeslist"></ul>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %d", len(candidates))
	}
}

func TestParseWatchlist_LineWithoutSeenState(t *testing.T) {
	markup := `
<ul class="mw-changeslist">
  <li class="mw-changeslist-line">
    <a class="mw-changeslist-diff" title="X" href="/w/index.php?title=X&amp;diff=1">diff</a>
  </li>
</ul>`
	if _, err := ParseWatchlist(markup); err == nil {
		t.Error("expected error for a line without a watched/not-watched class")
	}
}

func TestParseWatchlist_LineWithoutDiffLink(t *testing.T) {
	markup := `
<ul class="mw-changeslist">
  <li class="mw-changeslist-line mw-changeslist-line-watched"></li>
</ul>`
	if _, err := ParseWatchlist(markup); err == nil {
		t.Error("expected error for a line without a diff link")
	}
}
