package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ClipFinance/oft-client/balance"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ClipFinance/oft-client/discovery"
	"github.com/ClipFinance/oft-client/session"
	"github.com/ClipFinance/oft-client/transfer"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 10 * time.Second
	// requestTimeout bounds every contract round trip started by a request.
	requestTimeout = 2 * time.Minute
)

// ChainLister exposes the chain registry.
type ChainLister interface {
	List() []types.ChainDescriptor
	Get(chainID string) (types.ChainDescriptor, error)
}

// ProviderDirectory exposes the discovered wallet providers.
type ProviderDirectory interface {
	Providers() []discovery.Announcement
	Find(id string) (discovery.Announcement, error)
}

// Deps are the components the HTTP API drives.
type Deps struct {
	Chains   ChainLister
	Wallets  ProviderDirectory
	Sessions *session.Manager
	Balances *balance.Reader
	Workflow *transfer.Workflow
}

// Server serves the HTTP API and the workflow event feed.
type Server struct {
	deps       Deps
	logger     *logrus.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// NewServer creates the API server and registers its routes.
//
// Parameters:
// - addr: the listen address, e.g. ":8080".
// - deps: the components served.
// - logger: the logger for request and feed logging.
//
// Returns:
// - *Server: the server, not yet listening.
func NewServer(addr string, deps Deps, logger *logrus.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		deps:   deps,
		logger: logger,
		engine: engine,
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/chains", s.listChains)
		v1.GET("/wallets", s.listWallets)

		v1.GET("/session", s.getSession)
		v1.POST("/session", s.connect)
		v1.DELETE("/session", s.disconnect)

		v1.GET("/balance", s.getBalance)

		v1.POST("/quote", s.quote)
		v1.POST("/send", s.send)
		v1.POST("/reset", s.reset)
		v1.GET("/state", s.state)
		v1.GET("/ws", s.feed)
	}
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("API server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
