package messages

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"sort"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/constraints/pkg/logger"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

// keyInclusiveQualifier names the phrase min and max insert for inclusive
// bounds ("or equal to ").
const keyInclusiveQualifier = "inclusive_qualifier"

//go:embed locales/*.yaml
var builtinLocales embed.FS

// Catalog holds message formats per language and localizes violations.
// A Catalog is read-only after New and safe for concurrent use.
type Catalog struct {
	formats  map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
	logger   *slog.Logger

	files []string
	extra map[string]map[string]string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFallback sets the language used when no requested language matches.
// Defaults to English.
func WithFallback(tag language.Tag) Option {
	return func(c *Catalog) {
		c.fallback = tag
	}
}

// WithFile loads additional formats from a YAML or JSON catalog file.
// Formats from files override the built-in ones per key.
func WithFile(path string) Option {
	return func(c *Catalog) {
		if path != "" {
			c.files = append(c.files, path)
		}
	}
}

// WithFormats adds formats for one language programmatically.
func WithFormats(lang string, formats map[string]string) Option {
	return func(c *Catalog) {
		if c.extra == nil {
			c.extra = make(map[string]map[string]string)
		}
		c.extra[lang] = formats
	}
}

// New builds a catalog from the embedded locales plus any configured files
// and formats.
func New(ctx context.Context, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		formats:  make(map[language.Tag]map[string]string),
		fallback: language.English,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.loadEmbedded(ctx); err != nil {
		return nil, err
	}
	for _, file := range c.files {
		if err := c.loadFile(ctx, file); err != nil {
			return nil, err
		}
	}
	for lang, formats := range c.extra {
		if err := c.merge(lang, formats); err != nil {
			return nil, err
		}
	}

	c.tags = make([]language.Tag, 0, len(c.formats))
	for tag := range c.formats {
		c.tags = append(c.tags, tag)
	}
	sort.Slice(c.tags, func(i, j int) bool { return c.tags[i].String() < c.tags[j].String() })
	// the fallback goes first: the matcher returns the first tag on no match
	if i := slices.Index(c.tags, c.fallback); i > 0 {
		c.tags = slices.Insert(slices.Delete(c.tags, i, i+1), 0, c.fallback)
	}
	c.matcher = language.NewMatcher(c.tags)

	c.logger.DebugContext(ctx, "message catalog loaded", slog.Any("languages", c.Languages()))
	return c, nil
}

func (c *Catalog) loadEmbedded(ctx context.Context) error {
	entries, err := fs.ReadDir(builtinLocales, "locales")
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	for _, e := range entries {
		content, err := builtinLocales.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return errors.Join(ErrFailedToReadFile, err)
		}
		if err := c.loadContent(ctx, YAMLParser{}, content); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
	}
	return nil
}

func (c *Catalog) loadFile(ctx context.Context, file string) error {
	parser := NewParserForFile(file)
	if parser == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, file)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	c.logger.DebugContext(ctx, "loading message catalog", logger.Source(file))
	return c.loadContent(ctx, parser, content)
}

func (c *Catalog) loadContent(ctx context.Context, parser Parser, content []byte) error {
	data, err := parser.Parse(ctx, content)
	if err != nil {
		return err
	}
	for lang, formats := range data {
		if err := c.merge(lang, formats); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) merge(lang string, formats map[string]string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, lang, err)
	}
	dst, ok := c.formats[tag]
	if !ok {
		dst = make(map[string]string, len(formats))
		c.formats[tag] = dst
	}
	for key, format := range formats {
		dst[key] = format
	}
	return nil
}

// Languages returns the tags of all loaded languages, fallback first.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tags))
	for _, t := range c.tags {
		out = append(out, t.String())
	}
	return out
}

// Match picks the best loaded language for a preference list. preferences
// is a single tag such as "de-AT" or an Accept-Language style list such as
// "fr-CH, de;q=0.9". Unparsable or unmatched input yields the fallback.
func (c *Catalog) Match(preferences string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(preferences)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Formats returns the message formats of the best matching language.
// Keys missing in that language fall back to the fallback language and
// then to validate.DefaultMessageFormats.
func (c *Catalog) Formats(preferences string) validate.MessageFormats {
	return localeFormats{catalog: c, tag: c.Match(preferences)}
}

type localeFormats struct {
	catalog *Catalog
	tag     language.Tag
}

func (f localeFormats) Format(option string) string {
	if format, ok := f.catalog.lookup(f.tag, option); ok {
		return format
	}
	return validate.DefaultMessageFormats[option]
}

func (c *Catalog) lookup(tag language.Tag, key string) (string, bool) {
	if format, ok := c.formats[tag][key]; ok && format != "" {
		return format, true
	}
	if format, ok := c.formats[c.fallback][key]; ok && format != "" {
		return format, true
	}
	return "", false
}

// Localize rewrites a violation into the best matching language. Only
// violations carrying the built-in English format are rewritten; formats
// declared on a field are left as they are.
func (c *Catalog) Localize(preferences string, v validate.ConstraintViolation) validate.ConstraintViolation {
	if !validate.IsDefaultFormat(v.Constraint, v.MsgFormat) {
		return v
	}
	tag := c.Match(preferences)
	format, ok := c.lookup(tag, v.Constraint)
	if !ok {
		return v
	}

	out := v
	out.MsgFormat = format
	if (v.Constraint == validate.OptionMin || v.Constraint == validate.OptionMax) &&
		len(v.Params) == 2 && v.Params[0] != "" {
		if q, ok := c.lookup(tag, keyInclusiveQualifier); ok {
			out.Params = []string{q, v.Params[1]}
		}
	}
	return out
}

// LocalizeAll localizes every violation, preserving order.
func (c *Catalog) LocalizeAll(preferences string, vs validate.Violations) validate.Violations {
	if vs == nil {
		return nil
	}
	out := make(validate.Violations, 0, len(vs))
	for _, v := range vs {
		out = append(out, c.Localize(preferences, v))
	}
	return out
}
