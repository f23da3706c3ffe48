package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/devcompany145/Business-developers-ai/internal/ai"
	"github.com/devcompany145/Business-developers-ai/internal/i18n"
	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
)

// Search asks the search collaborator which businesses answer query and
// installs the result as the id filter. An empty query clears the id filter.
// On failure the id filter is left unset so the full list renders, and the
// error is returned for reporting only. The in-flight flag is always
// cleared.
func (s *Session) Search(ctx context.Context, query string) (*ai.SearchResult, error) {
	query = strings.TrimSpace(query)
	s.mu.Lock()
	s.touch()
	if query == "" {
		s.filter.IDs = nil
		s.mu.Unlock()
		return &ai.SearchResult{}, nil
	}
	s.searching = true
	bs := s.snap.Businesses
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.searching = false
		s.mu.Unlock()
	}()

	var (
		res *ai.SearchResult
		err error
	)
	if s.deps.Searcher == nil {
		err = ErrUnavailable
	} else {
		res, err = s.deps.Searcher.Search(ctx, query, bs, s.lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.filter.IDs = nil
		s.log.Warn("search failed", logging.String("query", query), logging.Err(err))
		return nil, fmt.Errorf("search: %w", err)
	}
	if res == nil {
		res = &ai.SearchResult{}
	}
	ids := make([]string, len(res.IDs))
	copy(ids, res.IDs)
	s.filter.IDs = ids
	return res, nil
}

// Analyze asks the analyst for a trend summary of the district. On failure
// the translated fallback message becomes the insight and is returned along
// with the error.
func (s *Session) Analyze(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.touch()
	s.analyzing = true
	snap := s.snap
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.analyzing = false
		s.mu.Unlock()
	}()

	var (
		text string
		err  error
	)
	if s.deps.Analyst == nil {
		err = ErrUnavailable
	} else {
		text, err = s.deps.Analyst.Analyze(ctx, snap, s.lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.insight = s.translator()(i18n.KeyInsightsUnavailable)
		s.log.Warn("analysis failed", logging.Err(err))
		return s.insight, fmt.Errorf("analyze: %w", err)
	}
	s.insight = text
	return text, nil
}

// FindMatches asks the matcher to score the district against p and keeps
// the result for Matches.
func (s *Session) FindMatches(ctx context.Context, p match.Profile) ([]match.Match, error) {
	s.mu.Lock()
	s.touch()
	s.matching = true
	bs := s.snap.Businesses
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.matching = false
		s.mu.Unlock()
	}()

	if s.deps.Matcher == nil {
		return nil, fmt.Errorf("match: %w", ErrUnavailable)
	}
	ms, err := s.deps.Matcher.Match(ctx, p, bs, s.lang)
	if err != nil {
		s.log.Warn("matching failed", logging.Err(err))
		return nil, fmt.Errorf("match: %w", err)
	}

	s.mu.Lock()
	s.matches = ms
	s.mu.Unlock()
	return ms, nil
}

// Matches ranks the last matcher result against the current district.
func (s *Session) Matches(opts match.Options) []match.Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return match.Rank(s.matches, s.snap.Businesses, opts)
}

// Introduce drafts an introduction from p to the matched business id.
func (s *Session) Introduce(p match.Profile, id string) (match.Introduction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := district.ByID(s.snap.Businesses, id)
	if b == nil {
		return match.Introduction{}, fmt.Errorf("%w: %s", ErrUnknownBusiness, id)
	}
	m := match.Match{BusinessID: id}
	for _, cand := range s.matches {
		if cand.BusinessID == id && cand.Score >= m.Score {
			m = cand
		}
	}
	return match.ComposeIntroduction(p, *b, m, s.translator()), nil
}

// Rent rents id, or the selected business when id is empty.
func (s *Session) Rent(ctx context.Context, id string) (district.Business, error) {
	id, err := s.target(id)
	if err != nil {
		return district.Business{}, err
	}
	var b district.Business
	err = s.hostAction(ctx, "rent", func(h HostActions) (err error) {
		b, err = h.Rent(ctx, id)
		return err
	})
	return b, err
}

// Add creates a business.
func (s *Session) Add(ctx context.Context, in district.Business) (district.Business, error) {
	var b district.Business
	err := s.hostAction(ctx, "add", func(h HostActions) (err error) {
		b, err = h.Add(ctx, in)
		return err
	})
	return b, err
}

// Update overwrites a business.
func (s *Session) Update(ctx context.Context, in district.Business) (district.Business, error) {
	var b district.Business
	err := s.hostAction(ctx, "update", func(h HostActions) (err error) {
		b, err = h.Update(ctx, in)
		return err
	})
	return b, err
}

// ToggleFavorite flips the favorite flag of id, or of the selected business
// when id is empty.
func (s *Session) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	id, err := s.target(id)
	if err != nil {
		return false, err
	}
	var fav bool
	err = s.hostAction(ctx, "favorite", func(h HostActions) (err error) {
		fav, err = h.ToggleFavorite(ctx, id)
		return err
	})
	return fav, err
}

func (s *Session) target(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return "", ErrNoSelection
	}
	return s.selectedID, nil
}

// hostAction runs fn against the host and reloads the district afterwards
// so every session sees the change.
func (s *Session) hostAction(ctx context.Context, name string, fn func(HostActions) error) error {
	if s.deps.Host == nil {
		return fmt.Errorf("%s: %w", name, ErrUnavailable)
	}
	err := fn(s.deps.Host)
	if m := s.deps.Metrics; m != nil {
		m.RecordHostAction(name, err)
	}
	if err != nil {
		return err
	}
	if s.refresh != nil {
		if err := s.refresh(ctx); err != nil {
			return fmt.Errorf("reloading district after %s: %w", name, err)
		}
	}
	return nil
}
