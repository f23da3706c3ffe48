// Package i18n resolves translation keys from YAML catalogs and negotiates
// the request language.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var embedded embed.FS

// KeyInsightsUnavailable is shown when trend analysis fails.
const KeyInsightsUnavailable = "insights.unavailable"

// Bundle holds one flat catalog per language.
type Bundle struct {
	catalogs map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback string
}

// New loads the embedded catalogs, then overlays <lang>.yaml files from dir
// when dir is non-empty. fallback is the language used for unknown keys and
// unmatched requests.
func New(fallback, dir string) (*Bundle, error) {
	b := &Bundle{catalogs: make(map[string]map[string]string)}

	if err := b.loadFS(embedded, "catalogs"); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := b.loadFS(os.DirFS(dir), "."); err != nil {
			return nil, fmt.Errorf("loading catalogs from %s: %w", dir, err)
		}
	}

	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}
	b.fallback = tag.String()
	if _, ok := b.catalogs[b.fallback]; !ok {
		return nil, fmt.Errorf("no catalog for fallback language %q", b.fallback)
	}

	// The fallback goes first so the matcher prefers it on a tie.
	langs := b.Languages()
	b.tags = []language.Tag{tag}
	for _, l := range langs {
		if l != b.fallback {
			b.tags = append(b.tags, language.Make(l))
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) loadFS(fsys fs.FS, root string) error {
	files, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(root, "*.yaml")))
	if err != nil {
		return err
	}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		lang := strings.TrimSuffix(filepath.Base(name), ".yaml")
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", name, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		cat := b.catalogs[tag.String()]
		if cat == nil {
			cat = make(map[string]string)
			b.catalogs[tag.String()] = cat
		}
		flatten("", tree, cat)
	}
	return nil
}

// flatten turns nested YAML maps into dotted keys.
func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		case nil:
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// Languages returns the catalog languages, sorted.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.catalogs))
	for l := range b.catalogs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// Negotiate picks the best catalog language for an Accept-Language header
// or a bare tag. Unparseable or empty input selects the fallback.
func (b *Bundle) Negotiate(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.fallback
	}
	return b.tags[idx].String()
}

// Translate resolves key in lang, then in the fallback language, and
// returns the key itself when neither has it.
func (b *Bundle) Translate(lang, key string) string {
	if s, ok := b.catalogs[lang][key]; ok {
		return s
	}
	if s, ok := b.catalogs[b.fallback][key]; ok {
		return s
	}
	return key
}

// Translator binds Translate to the negotiated language.
func (b *Bundle) Translator(lang string) func(string) string {
	lang = b.Negotiate(lang)
	return func(key string) string { return b.Translate(lang, key) }
}

// ErrUnknownLanguage is returned by Direction for languages without a catalog.
var ErrUnknownLanguage = errors.New("i18n: unknown language")

var rtlScripts = map[string]bool{"Arab": true, "Hebr": true, "Thaa": true, "Syrc": true}

// Direction reports "rtl" or "ltr" for a catalog language.
func (b *Bundle) Direction(lang string) (string, error) {
	if _, ok := b.catalogs[lang]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	script, _ := language.Make(lang).Script()
	if rtlScripts[script.String()] {
		return "rtl", nil
	}
	return "ltr", nil
}
