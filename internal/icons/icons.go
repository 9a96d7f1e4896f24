package icons

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the pinned upstream for the 24px outline icon set.
const DefaultBaseURL = "https://raw.githubusercontent.com/tailwindlabs/heroicons/master/optimized/24/outline/"

// Fetcher performs a single HTTP GET and returns the response body as a
// string. The default implementation is HTTPFetcher; tests substitute
// their own.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// FetchError reports a failed icon download. It carries the icon name
// that was requested and wraps the underlying cause.
type FetchError struct {
	Icon string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch icon %q: %s", e.Icon, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches outline icons from the upstream icon set and normalizes
// their path elements. The zero value is usable and targets the default
// upstream with the default HTTP fetcher.
type Client struct {
	BaseURL     string
	Fetcher     Fetcher
	Logger      zerolog.Logger
	LogOutput   io.Writer
	initLogOnce sync.Once
}

// NewClient returns a Client wired to the default upstream and fetcher.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Fetcher: NewHTTPFetcher(0),
	}
}

// Log returns the zerolog logger, initializing it lazily if LogOutput is set.
func (c *Client) Log() *zerolog.Logger {
	if c.LogOutput != nil {
		c.initLogOnce.Do(func() {
			c.Logger = zerolog.New(c.LogOutput).With().Timestamp().Logger()
		})
	}
	return &c.Logger
}

// FetchOutline downloads the named icon and returns its normalized path
// elements. The name is substituted into the URL verbatim, so callers must
// supply URL-safe identifiers. A response with no path elements yields an
// empty string, not an error.
func (c *Client) FetchOutline(ctx context.Context, name string) (string, error) {
	url := c.baseURL() + name + ".svg"

	body, err := c.fetcher().Get(ctx, url)
	if err != nil {
		c.Log().Error().Str("Method", "FetchOutline").Str("Icon", name).Err(err).Msg("fetch failed")
		return "", &FetchError{Icon: name, Err: err}
	}

	c.Log().Debug().Str("Method", "FetchOutline").Str("Icon", name).Int("Bytes", len(body)).Msg("fetched")

	return NormalizePaths(body), nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) fetcher() Fetcher {
	if c.Fetcher != nil {
		return c.Fetcher
	}
	return defaultFetcher
}

var defaultFetcher = NewHTTPFetcher(0)

type attrDefault struct {
	name string
	attr string
}

// Every path element must end up carrying these five attributes.
// Order matters: missing ones are appended in this exact sequence.
var pathDefaults = []attrDefault{
	{"stroke", `stroke="url(#paint1_linear_0_1)"`},
	{"stroke-linejoin", `stroke-linejoin="round"`},
	{"stroke-linecap", `stroke-linecap="round"`},
	{"stroke-width", `stroke-width="1"`},
	{"transform", `transform="matrix(25 0 0 25 25 0) translate(22, 0)"`},
}

// NormalizePaths keeps only the <path> lines of an SVG document and rewrites
// each so it carries the required presentation attributes. Attributes already
// present are never overridden or duplicated. Lines lacking a /> terminator
// are accepted as-is, with the defaults appended after the whole line.
func NormalizePaths(svg string) string {
	out := make([]string, 0)

	for _, line := range strings.Split(svg, "\n") {
		if !strings.Contains(line, "<path") {
			continue
		}

		body := line
		if i := strings.Index(line, "/>"); i != -1 {
			body = line[:i]
		}

		have := pathAttrNames(body)

		missing := make([]string, 0)
		for _, d := range pathDefaults {
			if !have[d.name] {
				missing = append(missing, d.attr)
			}
		}

		el := body
		if len(missing) > 0 {
			el += " " + strings.Join(missing, " ")
		}
		el += " />"

		out = append(out, el)
	}

	return strings.Join(out, "\n")
}

// pathAttrNames scans an element body and reports which attribute names are
// assigned a value. Quoted values are skipped whole, so attribute-like text
// inside a value never counts, and "stroke-width" never counts as "stroke".
func pathAttrNames(body string) map[string]bool {
	have := make(map[string]bool)

	s := body
	if i := strings.Index(s, "<path"); i != -1 {
		s = s[i+len("<path"):]
	}

	for i := 0; i < len(s); {
		if s[i] == ' ' || s[i] == '\t' {
			i++
			continue
		}

		start := i
		for i < len(s) && isAttrNameByte(s[i]) {
			i++
		}

		if i == start {
			i++
			continue
		}

		name := s[start:i]
		if i >= len(s) || s[i] != '=' {
			// Bare attribute, carries no value.
			continue
		}

		have[name] = true
		i++

		if i < len(s) && (s[i] == '"' || s[i] == '\'') {
			quote := s[i]
			i++
			for i < len(s) && s[i] != quote {
				i++
			}
			if i < len(s) {
				i++
			}
			continue
		}

		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
	}

	return have
}

func isAttrNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == ':':
		return true
	}
	return false
}
