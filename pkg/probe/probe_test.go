package probe

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/payflow/balance-service/internal/config"
	"github.com/payflow/balance-service/internal/logging"
	"github.com/payflow/balance-service/internal/server"
)

type ProbeTestSuite struct {
	suite.Suite
	logs   *bytes.Buffer
	logger logging.Logger
}

func TestProbeSuite(t *testing.T) {
	suite.Run(t, new(ProbeTestSuite))
}

func (s *ProbeTestSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.logger = logging.NewLoggerWithWriter(s.logs, "debug")
}

func (s *ProbeTestSuite) newChecker(opts ...Option) *Checker {
	opts = append([]Option{WithLogger(s.logger), WithTimeout(200 * time.Millisecond)}, opts...)
	return NewChecker(opts...)
}

func staticServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

// TestAgainstRealHandler checks the probe accepts what the service serves.
func (s *ProbeTestSuite) TestAgainstRealHandler() {
	cfg := &config.Config{HTTPPort: config.DefaultHTTPPort, LogType: config.SlogLoggerType, LogLevel: "info"}
	srv := server.NewServer(cfg, logging.NewLoggerWithWriter(io.Discard, "error"))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	s.NoError(s.newChecker().Check(context.Background(), ts.URL))
}

func (s *ProbeTestSuite) TestUsesConfiguredPath() {
	paths := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = w.Write([]byte(`{"status":"ok","service":"balance-service"}`))
	}))
	defer ts.Close()

	err := s.newChecker(WithPath("/live")).Check(context.Background(), ts.URL+"/ignored?x=1")
	s.Require().NoError(err)
	s.Equal("/live", <-paths)
}

func (s *ProbeTestSuite) TestUnhealthyResponses() {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"status":"ok","service":"balance-service"}`},
		{name: "not found", status: http.StatusNotFound, body: "404 page not found"},
		{name: "malformed body", status: http.StatusOK, body: "OK"},
		{name: "status not ok", status: http.StatusOK, body: `{"status":"degraded","service":"balance-service"}`},
		{name: "other service", status: http.StatusOK, body: `{"status":"ok","service":"user-service"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ts := staticServer(tt.status, tt.body)
			defer ts.Close()

			err := s.newChecker().Check(context.Background(), ts.URL)
			s.ErrorIs(err, ErrUnhealthy)
		})
	}
}

func (s *ProbeTestSuite) TestExpectedServiceOverride() {
	ts := staticServer(http.StatusOK, `{"status":"ok","service":"user-service"}`)
	defer ts.Close()

	s.NoError(s.newChecker(WithExpectedService("user-service")).Check(context.Background(), ts.URL))
}

func (s *ProbeTestSuite) TestTimeout() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()

	err := s.newChecker(WithTimeout(50*time.Millisecond)).Check(context.Background(), ts.URL)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrUnhealthy)
	s.Contains(s.logs.String(), "Health check failed")
}

func (s *ProbeTestSuite) TestUnreachable() {
	ts := staticServer(http.StatusOK, "")
	url := ts.URL
	ts.Close()

	err := s.newChecker().Check(context.Background(), url)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrUnhealthy)
}

func (s *ProbeTestSuite) TestInvalidBaseURL() {
	checker := s.newChecker()
	for _, raw := range []string{"localhost:8080", "ftp://localhost:8080", "http://", "://bad"} {
		s.Error(checker.Check(context.Background(), raw), raw)
	}
}
