package kube

import (
	"context"
	"fmt"
	"time"

	"github.com/aryankumar/parex/pkg/parex"
)

// DefaultCheckTimeout bounds HealthCheck when the caller passes no timeout
const DefaultCheckTimeout = 10 * time.Second

// HealthCheck pings the API server through the discovery API and returns
// its version. An unreachable or unresponsive cluster is an invalid source.
func (s *Source) HealthCheck(ctx context.Context, timeout time.Duration) (string, error) {
	if s.client == nil {
		return "", parex.InvalidSource("no kubernetes client")
	}
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		version string
		err     error
	}
	resultCh := make(chan result, 1)

	// the discovery client takes no context, so wait for it off the caller's goroutine
	go func() {
		version, err := s.client.Discovery().ServerVersion()
		if err != nil {
			resultCh <- result{err: err}
			return
		}
		resultCh <- result{version: version.String()}
	}()

	select {
	case <-checkCtx.Done():
		return "", &parex.Error{
			Code:   parex.CodeInvalidSource,
			Detail: fmt.Sprintf("cluster did not answer within %s", timeout),
			Err:    checkCtx.Err(),
		}
	case res := <-resultCh:
		if res.err != nil {
			return "", &parex.Error{Code: parex.CodeInvalidSource, Detail: "cluster is unreachable", Err: res.err}
		}
		return res.version, nil
	}
}
