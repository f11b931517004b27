// Package http serves the note service over HTTP.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// shutdownTimeout はGraceful shutdownの待ち時間
const shutdownTimeout = 5 * time.Second

// Handler はリクエストエンベロープを処理する
type Handler interface {
	Handle(ctx context.Context, requestBytes []byte) []byte
}

// Config はHTTPサーバー設定
type Config struct {
	Addr        string   // listen address (例: "127.0.0.1:8765")
	CORSOrigins []string // 許可するオリジンリスト、空ならCORS無効
	Logger      logrus.FieldLogger
}

// Server はノートサービスのHTTPサーバー
type Server struct {
	handler Handler
	config  Config
	logger  logrus.FieldLogger
	router  *gin.Engine
	srv     *http.Server
}

// New は新しいServerを生成
func New(handler Handler, config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		handler: handler,
		config:  config,
		logger:  logger,
	}
	s.router = s.buildRouter()
	s.srv = &http.Server{
		Addr:              config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), s.requestLogger())

	if len(s.config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.config.CORSOrigins,
			AllowMethods: []string{http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       time.Hour,
		}))
	}

	r.POST("/", s.handleRequest)
	return r
}

// Handler はルーターを返す（httptest用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はサーバーを起動し、contextがキャンセルされるまで実行
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve は指定リスナーで起動し、contextがキャンセルされるまで実行
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// contextキャンセル時にShutdownを呼ぶ
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("graceful shutdown failed")
		}
	}()

	s.logger.WithField("addr", ln.Addr().String()).Info("note service listening")
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Graceful shutdownはエラーではない
		return nil
	}
	return err
}

// handleRequest はエンベロープを処理してresult/errorを返す
func (s *Server) handleRequest(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	respBytes := s.handler.Handle(c.Request.Context(), body)
	c.Data(http.StatusOK, "application/json", respBytes)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("http request")
	}
}
