// Package tracker exposes the HTTP surface the game client talks to:
// report intake on /track and a liveness probe on /ping.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/execwatch/execwatch/internal/moderation"
	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// PingResponse is the fixed liveness probe body.
const PingResponse = "Bot is alive"

// ReportHandler produces the ban/alert decision for one report.
type ReportHandler interface {
	HandleReport(ctx context.Context, report moderation.Report) (moderation.Decision, error)
}

// Server implements the tracker HTTP service.
type Server struct {
	intake ReportHandler
	logger *zap.Logger
}

// NewHandler creates the tracker HTTP handler with routing and gzip
// compression configured.
func NewHandler(intake ReportHandler, logger *zap.Logger) http.Handler {
	server := &Server{
		intake: intake,
		logger: logger.Named("tracker"),
	}

	router := bunrouter.New()
	router.POST("/track", server.handleTrack)
	router.GET("/ping", server.handlePing)

	return gzhttp.GzipHandler(router)
}

// Run serves the tracker until the context is canceled, then shuts the
// listener down gracefully.
func Run(ctx context.Context, port int, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Tracker server listening", zap.Int("port", port))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("tracker server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("tracker server shutdown failed: %w", err)
		}

		return nil
	}
}

// handleTrack decodes one execution report, runs it through the intake
// engine and replies with the ban decision.
func (s *Server) handleTrack(w http.ResponseWriter, req bunrouter.Request) error {
	var report moderation.Report
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&report); err != nil {
		s.logger.Debug("Rejected malformed report body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return nil
	}

	if report.PlayerID == "" || report.Username == "" || report.DisplayName == "" {
		http.Error(w, "player_id, username and display_name are required", http.StatusBadRequest)
		return nil
	}

	decision, err := s.intake.HandleReport(req.Context(), report)
	if err != nil {
		s.logger.Error("Failed to handle report",
			zap.String("player_id", report.PlayerID),
			zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil
	}

	w.Header().Set("Content-Type", "application/json")

	return sonic.ConfigDefault.NewEncoder(w).Encode(decision)
}

// handlePing serves the fixed-text liveness response.
func (s *Server) handlePing(w http.ResponseWriter, _ bunrouter.Request) error {
	_, err := w.Write([]byte(PingResponse))
	return err
}
