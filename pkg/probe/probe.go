// pkg/probe/probe.go

package probe

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Result captures a single reachability attempt. Only Reachable is
// contractually meaningful; Latency and Reason exist for logging.
type Result struct {
	Target    string        `yaml:"target"`
	Reachable bool          `yaml:"reachable"`
	Latency   time.Duration `yaml:"latency"`
	Reason    string        `yaml:"reason,omitempty"`
}

// TCP attempts one bounded TCP connection to host:port. Every failure
// mode, including refusal, timeout and resolution failure, collapses to
// Reachable=false; no error propagates and nothing is retried.
func TCP(rc *argus_io.RuntimeContext, host string, port int, timeout time.Duration) Result {
	logger := otelzap.Ctx(rc.Ctx)
	target := net.JoinHostPort(host, strconv.Itoa(port))

	start := time.Now()
	conn, err := net.DialTimeout("tcp", target, timeout)
	elapsed := time.Since(start)

	result := Result{Target: target, Latency: elapsed}
	if err != nil {
		result.Reason = err.Error()
		logger.Info("Port unreachable",
			zap.String("target", target),
			zap.Duration("elapsed", elapsed),
			zap.String("reason", result.Reason),
		)
		return result
	}
	defer conn.Close()

	result.Reachable = true
	logger.Info("Port reachable",
		zap.String("target", target),
		zap.Duration("latency", elapsed),
	)
	return result
}

// Describe renders a one-line advisory summary for operator output.
func (r Result) Describe() string {
	if r.Reachable {
		return fmt.Sprintf("%s reachable (%s)", r.Target, r.Latency.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s unreachable: %s", r.Target, r.Reason)
}
