// Package webfetch provides the block that fetches a web page and converts
// its HTML content to Markdown. It is the one built-in block with a real
// side effect; workflows that only simulate I/O can supply the page body
// through the "body" parameter instead of performing an HTTP request.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/core/trace"
)

// Type is the registry key for this block.
const Type = "webFetch"

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// MaxBodySize is the maximum response body size (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// userAgent identifies the engine in outbound requests.
	userAgent = "flowcanvas-webfetch-block/1.0"
)

// Fetcher is the webFetch block. The zero value is not usable; construct it
// with [New], which installs a shared HTTP client.
type Fetcher struct {
	client *http.Client
}

var _ blocks.Block = (*Fetcher)(nil)

// New returns the webFetch block backed by an HTTP client with a bounded
// redirect chain.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects (>10)")
				}
				return nil
			},
		},
	}
}

// Execute fetches the page named by the "url" parameter (or, when absent,
// by the block's string input) and returns its content as Markdown.
//
// Partial URLs (e.g. "example.com") are normalised by prepending "https://".
// When the "body" parameter is set, the HTTP request is skipped entirely and
// the parameter value is converted instead — the simulated-I/O path used by
// level content and tests.
func (fetcher *Fetcher) Execute(ctx context.Context, executionContext *blocks.ExecutionContext) (*trace.Result, error) {
	// Simulated path: convert the scripted body, no network involved.
	if body := executionContext.Param("body", ""); body != "" {
		markdown, err := htmltomarkdown.ConvertString(body)
		if err != nil {
			return nil, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
		}
		return &trace.Result{
			Output: markdown,
			Metadata: trace.Metadata{
				Extra: map[string]any{"simulated": true},
			},
		}, nil
	}

	url := strings.TrimSpace(executionContext.Param("url", ""))
	if url == "" {
		if inputURL, isString := executionContext.Input.(string); isString {
			url = strings.TrimSpace(inputURL)
		}
	}
	if url == "" {
		return nil, fmt.Errorf("webFetch requires a url parameter or a string input")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := fetcher.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d %s", response.StatusCode, response.Status)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(response.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(htmlBytes) == MaxBodySize {
		return nil, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return &trace.Result{
		Output: markdown,
		Metadata: trace.Metadata{
			APICalls: 1,
			Extra: map[string]any{
				"url": response.Request.URL.String(),
			},
		},
	}, nil
}
