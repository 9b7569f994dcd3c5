// Package rest serves the prompt marketplace JSON API over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// PromptService is the business API the handlers drive.
type PromptService interface {
	ListAll(ctx context.Context) ([]*models.Prompt, error)
	Create(ctx context.Context, in models.PromptInput) (*models.Prompt, error)
	AddComment(ctx context.Context, id string, in models.CommentInput) (*models.Prompt, error)
}

type Server struct {
	address       string
	logger        logging.Logger
	prompts       PromptService
	allowedOrigin string
}

func NewServer(address string, l logging.Logger, prompts PromptService, allowedOrigin string) *Server {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &Server{
		address:       address,
		logger:        l.With("module", "http_server"),
		prompts:       prompts,
		allowedOrigin: allowedOrigin,
	}
}

// Handler returns the routed API with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /prompts", s.listPrompts)
	mux.HandleFunc("POST /prompts", s.createPrompt)
	mux.HandleFunc("POST /prompts/{id}/comments", s.addComment)
	mux.HandleFunc("/", s.methodNotAllowed)

	return s.recoverer(s.accessLog(s.cors(mux)))
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
