package respserver

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/modware/sesskv/internal/core/domain"
	"github.com/modware/sesskv/internal/host"
	"github.com/modware/sesskv/internal/telemetry/metric"
)

// formatWireError converts an error to a RESP error string.
// For DomainErrors, returns "ERR <code> <message>".
// For other errors, returns "ERR <message>".
func formatWireError(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return "ERR " + de.Code + " " + de.Message
	}
	return "ERR " + err.Error()
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPLimiter(commandsPerSecond int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(commandsPerSecond),
		burst:    commandsPerSecond,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	return lim.Allow()
}

// Dispatcher decodes commands into runtime calls and encodes the
// replies. Connection-level commands never reach the runtime.
type Dispatcher struct {
	rt      *host.Runtime
	logger  *slog.Logger
	metrics *metric.Metrics
	limiter *ipLimiter
}

// NewDispatcher creates a dispatcher over the given runtime.
func NewDispatcher(rt *host.Runtime, logger *slog.Logger, metrics *metric.Metrics, rateLimit int) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *ipLimiter
	if rateLimit > 0 {
		limiter = newIPLimiter(rateLimit)
	}

	return &Dispatcher{
		rt:      rt,
		logger:  logger,
		metrics: metrics,
		limiter: limiter,
	}
}

// Handle handles one decoded client command (RESP array of bulk strings).
func (d *Dispatcher) Handle(ctx context.Context, conn *Conn, args [][]byte) {
	if len(args) == 0 {
		_ = WriteError(conn.bw, "ERR no command")
		return
	}

	cmdName := normalizeCommandName(args[0])

	// Connection-level commands bypass rate limiting and the runtime.
	switch cmdName {
	case "PING":
		d.handlePing(conn, args)
		return
	case "QUIT":
		d.handleQuit(conn)
		return
	}

	if d.limiter != nil {
		ip := conn.RemoteAddr().String()
		// Extract IP without port
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
		if !d.limiter.allow(ip) {
			_ = WriteError(conn.bw, "ERR SK-RATE-4290 rate limit exceeded")
			return
		}
	}

	cmdArgs := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		cmdArgs = append(cmdArgs, string(a))
	}

	d.metrics.IncCommand(cmdName)

	reply, err := d.rt.Call(ctx, cmdName, cmdArgs...)
	if err != nil {
		d.metrics.IncCommandError(cmdName)
		d.logger.Debug("command failed",
			"conn_id", conn.ID(),
			"command", cmdName,
			"error", err)
		_ = WriteError(conn.bw, formatWireError(err))
		return
	}

	_ = writeReply(conn.bw, reply)
}

func (d *Dispatcher) handlePing(conn *Conn, args [][]byte) {
	if len(args) > 1 {
		_ = WriteBulk(conn.bw, args[1])
		return
	}
	_ = WriteSimpleString(conn.bw, "PONG")
}

func (d *Dispatcher) handleQuit(conn *Conn) {
	_ = WriteSimpleString(conn.bw, "OK")
	_ = conn.bw.Flush()
	_ = conn.Close()
}

// writeReply encodes a host reply as RESP2.
func writeReply(w *bufio.Writer, r host.Reply) error {
	switch r.Kind {
	case host.ReplySimple:
		return WriteSimpleString(w, r.Str)
	case host.ReplyBulk:
		return WriteBulkString(w, r.Str)
	case host.ReplyInteger:
		return WriteInteger(w, r.Int)
	case host.ReplyArray:
		if err := WriteArrayHeader(w, len(r.Elems)); err != nil {
			return err
		}
		for _, e := range r.Elems {
			if err := writeReply(w, e); err != nil {
				return err
			}
		}
		return nil
	default:
		return WriteNullBulk(w)
	}
}
