package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformotel "github.com/louisbranch/portfolio/internal/platform/otel"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
)

// maxUpstreamBytes caps the execution API response read into memory.
const maxUpstreamBytes = 1 << 20

type pistonFile struct {
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
	Stdin    string       `json:"stdin,omitempty"`
}

type pistonStage struct {
	Stdout string  `json:"stdout"`
	Stderr string  `json:"stderr"`
	Output string  `json:"output"`
	Code   *int    `json:"code"`
	Signal *string `json:"signal"`
}

type pistonResponse struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Run      pistonStage  `json:"run"`
	Compile  *pistonStage `json:"compile,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// upstreamError reports a failed execution API call.
type upstreamError struct {
	Status  int
	Message string
}

func (e *upstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("execute api returned status %d", e.Status)
	}
	return fmt.Sprintf("execute api returned status %d: %s", e.Status, e.Message)
}

// execute forwards req to the execution API at url.
func execute(ctx context.Context, client *http.Client, url string, req executeRequest) (executeResponse, error) {
	ctx, span := platformotel.Tracer("portfolio/sandbox").Start(ctx, "sandbox.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("sandbox.language", req.Language),
		attribute.String("sandbox.version", req.Version),
	)
	ctx, cancel := context.WithTimeout(ctx, timeouts.ExecuteUpstream)
	defer cancel()

	payload, err := json.Marshal(pistonRequest{
		Language: req.Language,
		Version:  req.Version,
		Files:    []pistonFile{{Content: req.Code}},
		Stdin:    req.Stdin,
	})
	if err != nil {
		return executeResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return executeResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return executeResponse{}, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBytes))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return executeResponse{}, err
	}
	var decoded pistonResponse
	decodeErr := json.Unmarshal(body, &decoded)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := &upstreamError{Status: resp.StatusCode, Message: decoded.Message}
		span.SetStatus(codes.Error, err.Error())
		return executeResponse{}, err
	}
	if decodeErr != nil {
		span.SetStatus(codes.Error, decodeErr.Error())
		return executeResponse{}, fmt.Errorf("decode execute api response: %w", decodeErr)
	}
	return decoded.result(), nil
}

// result flattens the Piston stages. A failed compile stage is reported in
// place of the run stage.
func (p pistonResponse) result() executeResponse {
	stage := p.Run
	if p.Compile != nil && p.Compile.Code != nil && *p.Compile.Code != 0 {
		stage = *p.Compile
	}
	out := executeResponse{
		Language: p.Language,
		Version:  p.Version,
		Stdout:   stage.Stdout,
		Stderr:   stage.Stderr,
		Output:   stage.Output,
	}
	if stage.Code != nil {
		out.ExitCode = *stage.Code
	}
	if stage.Signal != nil {
		out.Signal = *stage.Signal
	}
	return out
}
