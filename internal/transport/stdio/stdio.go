// Package stdio serves the note service over newline-delimited stdin/stdout.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Handler はリクエストエンベロープを処理する
type Handler interface {
	Handle(ctx context.Context, requestBytes []byte) []byte
}

// Server は1行1リクエストで応答するサーバー
type Server struct {
	handler Handler
	reader  io.Reader
	writer  io.Writer
	logger  logrus.FieldLogger
}

// Option はサーバーオプション
type Option func(*Server)

// WithReader はreaderを設定（テスト用）
func WithReader(r io.Reader) Option {
	return func(s *Server) {
		s.reader = r
	}
}

// WithWriter はwriterを設定（テスト用）
func WithWriter(w io.Writer) Option {
	return func(s *Server) {
		s.writer = w
	}
}

// WithLogger はロガーを設定
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New は新しいServerを生成
func New(handler Handler, opts ...Option) *Server {
	s := &Server{
		handler: handler,
		reader:  os.Stdin,
		writer:  os.Stdout,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run は入力がEOFになるかcontextがキャンセルされるまで処理する
// 改行なしの最終行も1リクエストとして扱う
func (s *Server) Run(ctx context.Context) error {
	r := bufio.NewReader(s.reader)
	w := bufio.NewWriter(s.writer)
	handled := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		if len(bytes.TrimSpace(line)) > 0 {
			response := s.handler.Handle(ctx, bytes.TrimSpace(line))
			if _, err := w.Write(append(response, '\n')); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			handled++
		}

		if errors.Is(readErr, io.EOF) {
			s.logger.WithField("requests", handled).Debug("stdin closed")
			return nil
		}
	}
}
