package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/pkg/analytics"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
)

// ErrEmptyResponse is returned when the provider answers with no content.
var ErrEmptyResponse = errors.New("ai: empty response")

// SearchFilters are structured constraints the model extracted from a query.
type SearchFilters struct {
	Category string `json:"category,omitempty"`
}

// SearchResult is the ids of the businesses that answer a query.
type SearchResult struct {
	IDs     []string      `json:"ids"`
	Filters SearchFilters `json:"filters"`
}

// Searcher answers natural-language queries over the district.
type Searcher interface {
	Search(ctx context.Context, query string, bs []district.Business, lang string) (*SearchResult, error)
}

// Analyst writes a short trend analysis of the district.
type Analyst interface {
	Analyze(ctx context.Context, s *district.Snapshot, lang string) (string, error)
}

// Matcher scores businesses against the user's company profile.
type Matcher interface {
	Match(ctx context.Context, p match.Profile, bs []district.Business, lang string) ([]match.Match, error)
}

// Options tune every call made by a Client.
type Options struct {
	Model     string
	MaxTokens int
	// Timeout bounds a single call. Zero leaves the caller's deadline alone.
	Timeout time.Duration
}

// Client implements Searcher, Analyst and Matcher.
type Client struct {
	provider Provider
	opts     Options
	logger   logging.Logger
	validate *validator.Validate

	// OnCall, if set, is called after every provider round trip.
	OnCall func(operation string, err error, took time.Duration)
}

var (
	_ Searcher = (*Client)(nil)
	_ Analyst  = (*Client)(nil)
	_ Matcher  = (*Client)(nil)
)

// NewClient wraps provider. A nil logger discards output.
func NewClient(provider Provider, opts Options, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		provider: provider,
		opts:     opts,
		logger:   logger.Named("ai"),
		validate: validator.New(),
	}
}

const searchPrompt = `You search a directory of businesses in an office district.
Return a JSON object {"ids": [...], "filters": {"category": "..."}} listing the
ids of the businesses that answer the user's query, best match first. Use only
ids from the directory. Leave "filters" empty when the query names no category.`

// Search returns the ids of the businesses that match query. Ids the model
// invents are dropped.
func (c *Client) Search(ctx context.Context, query string, bs []district.Business, lang string) (*SearchResult, error) {
	dir, err := json.Marshal(directory(bs))
	if err != nil {
		return nil, fmt.Errorf("encoding directory: %w", err)
	}
	user := fmt.Sprintf("Language: %s\nDirectory: %s\nQuery: %s", languageName(lang), dir, query)

	var res SearchResult
	if err := c.completeJSON(ctx, "search", searchPrompt, user, &res); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(bs))
	for _, b := range bs {
		known[b.ID] = true
	}
	ids := res.IDs[:0]
	for _, id := range res.IDs {
		if known[id] {
			ids = append(ids, id)
		}
	}
	res.IDs = ids
	return &res, nil
}

const analyzePrompt = `You are a market analyst for an office district. Given the
district statistics, write three to five short paragraphs on occupancy, foot
traffic and unmet service demand, with one concrete recommendation.`

// Analyze returns a plain-text trend analysis of s.
func (c *Client) Analyze(ctx context.Context, s *district.Snapshot, lang string) (string, error) {
	summary, _ := analytics.Resolve(s, analytics.DefaultTopN)
	user := fmt.Sprintf("Respond in %s.\n\n%s", languageName(lang), summary.Digest())

	resp, err := c.complete(ctx, "analyze", CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: analyzePrompt},
			{Role: RoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

const matchPrompt = `You match companies for business partnerships. Score every
business in the directory from 0 to 100 for how well it complements the user's
company. Return a JSON object {"matches": [{"business_id": "...", "score": 0,
"reasons": ["..."]}]}. Reasons are short phrases in the requested language.`

type matchEnvelope struct {
	Matches []match.Match `json:"matches" validate:"dive"`
}

// Match returns scored candidates for p. Entries that fail validation make
// the whole response an error.
func (c *Client) Match(ctx context.Context, p match.Profile, bs []district.Business, lang string) ([]match.Match, error) {
	profile, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	dir, err := json.Marshal(directory(district.Occupied(bs)))
	if err != nil {
		return nil, fmt.Errorf("encoding directory: %w", err)
	}
	user := fmt.Sprintf("Language: %s\nProfile: %s\nDirectory: %s", languageName(lang), profile, dir)

	var env matchEnvelope
	if err := c.completeJSON(ctx, "match", matchPrompt, user, &env); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(env); err != nil {
		return nil, fmt.Errorf("invalid match response: %w", err)
	}
	return env.Matches, nil
}

func (c *Client) completeJSON(ctx context.Context, op, system, user string, out any) error {
	resp, err := c.complete(ctx, op, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		JSONMode: true,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), out); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}

func (c *Client) complete(ctx context.Context, op string, req CompletionRequest) (*CompletionResponse, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	if req.Model == "" {
		req.Model = c.opts.Model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.opts.MaxTokens
	}

	start := time.Now()
	resp, err := c.provider.Complete(ctx, req)
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = ErrEmptyResponse
	}
	took := time.Since(start)
	if c.OnCall != nil {
		c.OnCall(op, err, took)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.logger.Debug("completion",
		logging.String("operation", op),
		logging.String("provider", c.provider.Name()),
		logging.Int("input_tokens", resp.InputTokens),
		logging.Int("output_tokens", resp.OutputTokens),
		logging.Duration("took", took),
	)
	return resp, nil
}

type entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Occupied    bool     `json:"occupied"`
	Offers      []string `json:"offers,omitempty"`
	Needs       []string `json:"needs,omitempty"`
}

func directory(bs []district.Business) []entry {
	out := make([]entry, 0, len(bs))
	for _, b := range bs {
		e := entry{
			ID:          b.ID,
			Name:        b.Name,
			Category:    b.Category,
			Description: b.Description,
			Occupied:    b.IsOccupied,
		}
		if b.Genome != nil {
			e.Offers = b.Genome.ServicesOffered
			e.Needs = b.Genome.ServicesNeeded
		}
		out = append(out, e)
	}
	return out
}

// languageName renders a BCP 47 tag as an English language name for prompts.
// Unparseable tags fall back to English.
func languageName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "English"
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return "English"
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
