package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polycalc/pkg/errors"
)

// logHooks writes observability events to the CLI logger at debug level.
// It implements observability.PipelineHooks, CacheHooks and HTTPHooks.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnParse(_ context.Context, input string, degree int, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "input", input, "code", errors.GetCode(err))
		return
	}
	h.logger.Debug("parse", "degree", degree)
}

func (h *logHooks) OnSolveStart(_ context.Context, degree int) {
	h.logger.Debug("solve start", "degree", degree)
}

func (h *logHooks) OnSolveComplete(_ context.Context, degree, iterations int, maxResidual float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "degree", degree, "iterations", iterations, "code", errors.GetCode(err), "duration", d)
		return
	}
	h.logger.Debug("solve complete", "degree", degree, "iterations", iterations, "max_residual", maxResidual, "duration", d)
}

func (h *logHooks) OnExecuteComplete(_ context.Context, op string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("request failed", "op", op, "code", errors.GetCode(err), "duration", d)
		return
	}
	h.logger.Debug("request complete", "op", op, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.logger.Debug("http request", "method", method, "path", path, "request_id", requestID)
}

func (h *logHooks) OnResponse(_ context.Context, method, path, requestID string, status int, d time.Duration) {
	h.logger.Info("http", "method", method, "path", path, "status", status, "request_id", requestID, "duration", d)
}
