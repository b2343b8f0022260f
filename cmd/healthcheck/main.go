// Command healthcheck probes a running balance-service and exits 0 when it is healthy.
// It is meant for container HEALTHCHECK instructions where no shell or curl is available.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/payflow/balance-service/internal/logging"
	"github.com/payflow/balance-service/pkg/probe"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the service")
	timeout := flag.Duration("timeout", 2*time.Second, "Timeout for the health request")
	flag.Parse()

	logger := logging.NewLoggerWithWriter(os.Stderr, "warn")
	checker := probe.NewChecker(
		probe.WithTimeout(*timeout),
		probe.WithLogger(logger),
	)

	if err := checker.Check(context.Background(), *baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "unhealthy: %v\n", err)
		os.Exit(1)
	}
}
