package adapthttp

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"linkboard/internal/logutil"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

const (
	// maxMetaBody bounds how much of a remote response is read.
	maxMetaBody  = 512 * 1024
	metaCacheTTL = 24 * time.Hour
)

var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// metaProxy fetches favicons and page titles on behalf of the browser UI
// so the dashboard never issues cross-origin requests. Responses are
// cached in memory with a TTL; keys are xxhash digests of the target URL.
type metaProxy struct {
	cache  *bigcache.BigCache
	client *http.Client
}

func newMetaProxy() *metaProxy {
	cache, _ := bigcache.New(context.Background(), bigcache.DefaultConfig(metaCacheTTL))
	return &metaProxy{
		cache:  cache,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	target, err := metaTarget(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.meta.favicon(r.Context(), target)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Warn().Err(err).Str("url", target.String()).Msg("favicon fetch failed")
		http.Error(w, "favicon not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(body))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

func (s *Server) handlePageTitle(w http.ResponseWriter, r *http.Request) {
	target, err := metaTarget(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title, err := s.meta.pageTitle(r.Context(), target)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Warn().Err(err).Str("url", target.String()).Msg("title fetch failed")
		http.Error(w, "title not available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}

// favicon returns the bytes of the site's /favicon.ico.
func (p *metaProxy) favicon(ctx context.Context, target *url.URL) ([]byte, error) {
	iconURL := target.Scheme + "://" + target.Host + "/favicon.ico"
	key := cacheKey("favicon", iconURL)
	if body, err := p.cache.Get(key); err == nil {
		return body, nil
	}

	body, err := p.fetch(ctx, iconURL)
	if err != nil {
		return nil, err
	}
	_ = p.cache.Set(key, body)
	return body, nil
}

// pageTitle returns the contents of the page's <title> element.
func (p *metaProxy) pageTitle(ctx context.Context, target *url.URL) (string, error) {
	key := cacheKey("title", target.String())
	if body, err := p.cache.Get(key); err == nil {
		return string(body), nil
	}

	body, err := p.fetch(ctx, target.String())
	if err != nil {
		return "", err
	}
	m := titlePattern.FindSubmatch(body)
	if m == nil {
		return "", errors.New("no title element")
	}
	title := strings.TrimSpace(html.UnescapeString(string(m[1])))
	if title == "" {
		return "", errors.New("empty title element")
	}
	_ = p.cache.Set(key, []byte(title))
	return title, nil
}

func (p *metaProxy) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxMetaBody))
}

// metaTarget validates the url query parameter; only absolute http and
// https URLs are proxied.
func metaTarget(r *http.Request) (*url.URL, error) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		return nil, errors.New("missing url parameter")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("url must be absolute http or https")
	}
	return u, nil
}

func cacheKey(kind, rawURL string) string {
	return kind + ":" + strconv.FormatUint(xxhash.Sum64String(rawURL), 16)
}
