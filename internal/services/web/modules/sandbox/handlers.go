package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	module "github.com/louisbranch/portfolio/internal/services/web/module"
	"github.com/louisbranch/portfolio/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio/internal/services/web/platform/ratelimit"
)

const (
	// maxBodyBytes caps one execute request body.
	maxBodyBytes = 128 << 10
	// maxCodeBytes caps the submitted source.
	maxCodeBytes = 64 << 10
	// defaultVersion asks the execution API for its latest runtime.
	defaultVersion = "*"
)

// Execute outcomes recorded in metrics.
const (
	resultOK            = "ok"
	resultInvalid       = "invalid"
	resultRateLimited   = "rate_limited"
	resultUnavailable   = "unavailable"
	resultUpstreamError = "upstream_error"
)

type executeRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
}

type executeResponse struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Output   string `json:"output"`
	ExitCode int    `json:"exitCode"`
	Signal   string `json:"signal,omitempty"`
}

func (req *executeRequest) normalize() error {
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	req.Version = strings.TrimSpace(req.Version)
	if req.Version == "" {
		req.Version = defaultVersion
	}
	switch {
	case req.Language == "":
		return errors.New("language is required")
	case strings.TrimSpace(req.Code) == "":
		return errors.New("code is required")
	case len(req.Code) > maxCodeBytes:
		return errors.New("code is too large")
	}
	return nil
}

type handlers struct {
	cfg  Config
	deps module.Dependencies
}

func newHandlers(cfg Config, deps module.Dependencies) handlers {
	return handlers{cfg: cfg, deps: deps}
}

func (h handlers) handleExecute(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ExecuteURL == "" {
		h.cfg.Metrics.ObserveExecute(resultUnavailable)
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "code execution is not configured")
		return
	}
	client := ratelimit.ClientIP(r, h.deps.SchemePolicy.TrustForwardedProto)
	if !h.cfg.Limiter.Allow(client) {
		h.cfg.Metrics.ObserveExecute(resultRateLimited)
		w.Header().Set("Retry-After", "60")
		_ = httpx.WriteJSONError(w, http.StatusTooManyRequests, "too many execution requests")
		return
	}

	var req executeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.cfg.Metrics.ObserveExecute(resultInvalid)
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		_ = httpx.WriteJSONError(w, status, "invalid execute request")
		return
	}
	if err := req.normalize(); err != nil {
		h.cfg.Metrics.ObserveExecute(resultInvalid)
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := execute(r.Context(), h.cfg.Client, h.cfg.ExecuteURL, req)
	if err != nil {
		h.cfg.Metrics.ObserveExecute(resultUpstreamError)
		h.deps.Log().Warn("execute api call failed",
			zap.String("language", req.Language),
			zap.String("client", client),
			zap.Error(err),
		)
		_ = httpx.WriteJSONError(w, http.StatusBadGateway, "code execution failed")
		return
	}
	h.cfg.Metrics.ObserveExecute(resultOK)
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, "not found")
}
