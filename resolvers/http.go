package resolvers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/treekv/treekv/config"
	"github.com/treekv/treekv/internal/util"
	"github.com/treekv/treekv/requests"
	"github.com/treekv/treekv/tree"
)

// HTTPConfig contains http-specific resolver source fields
type HTTPConfig struct {
	BaseURL string            `json:"base_url"`
	Headers map[string]string `json:"headers,omitempty"`
	Timeout *float64          `json:"timeout,omitempty"` // Seconds; default config.DefaultResolverTimeout
}

func RegisterHTTP() {
	Register(HTTPResolverType, func(raw []byte) (tree.Resolver, error) {
		var cfg HTTPConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return NewHTTPResolverWithConfig(cfg)
	})
}

// HTTPResolver fetches node definition documents over HTTP: a GET on
// <base_url>/node?path=<escaped path> must answer with the JSON
// [requests.NodeDef] of the node stored at that path.
type HTTPResolver struct {
	cfg    HTTPConfig
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPResolver creates a resolver against baseURL with default settings
func NewHTTPResolver(baseURL string) *HTTPResolver {
	r, _ := NewHTTPResolverWithConfig(HTTPConfig{BaseURL: baseURL})
	return r
}

// NewHTTPResolverWithConfig creates a resolver from a full source config
func NewHTTPResolverWithConfig(cfg HTTPConfig) (*HTTPResolver, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("http resolver requires a base_url")
	}
	timeout := config.DefaultResolverTimeout
	if cfg.Timeout != nil {
		timeout = *cfg.Timeout
	}
	return &HTTPResolver{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(timeout * float64(time.Second))},
		logger: util.GetLogger("http-resolver"),
	}, nil
}

// Resolve fetches and converts the node definition stored at path
func (r *HTTPResolver) Resolve(path string) (*tree.Node, error) {
	reqID := uuid.New().String()
	endpoint := strings.TrimRight(r.cfg.BaseURL, "/") + "/node?path=" + url.QueryEscape(path)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range r.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error().Err(err).Str("req_id", reqID).Str("path", path).Msg("Resolver request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("resolver returned status %d for %q", resp.StatusCode, path)
		r.logger.Error().Err(err).Str("req_id", reqID).Str("path", path).Msg("Resolver request rejected")
		return nil, err
	}

	var def requests.NodeDef
	if err := json.NewDecoder(resp.Body).Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode node definition for %q: %w", path, err)
	}
	if def.Path == "" {
		def.Path = path
	}

	node, err := requests.ToNode(&def)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("req_id", reqID).Str("path", path).Msg("Resolved node over HTTP")
	return node, nil
}
