package check

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jaainil/vivid-valid/internal/ratelimit"
	"github.com/jaainil/vivid-valid/types"
)

// ProberConfig configures the SMTP envelope probe.
type ProberConfig struct {
	// FromDomain is presented in HELO and as the MAIL FROM domain.
	FromDomain string
	// Timeout covers the whole dialogue: connect plus every round trip.
	// Default 5s.
	Timeout time.Duration
	// Port is the SMTP port. Default 25.
	Port string
	// Limiter, when set, throttles outbound probes per target domain.
	Limiter *ratelimit.Manager
	// Dial is injectable for testing. Defaults to net.DialTimeout.
	Dial func(network, address string, timeout time.Duration) (net.Conn, error)
	// Now is injectable for testing the random probe address.
	Now func() time.Time
}

// Prober drives a remote mail server through the envelope dialogue to test
// recipient acceptance and catch-all behavior. Every probe opens a fresh
// connection; connections are never reused across validations.
type Prober struct {
	cfg ProberConfig
}

// NewProber creates a prober. FromDomain should be a real domain with
// proper reverse DNS, or remote servers will distrust the dialogue.
func NewProber(cfg ProberConfig) *Prober {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Port == "" {
		cfg.Port = "25"
	}
	if cfg.Dial == nil {
		cfg.Dial = net.DialTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.FromDomain == "" {
		cfg.FromDomain = "verifier.local"
	}
	return &Prober{cfg: cfg}
}

// Probe tests whether mxHost accepts mail for email at domain. The state
// machine advances one response at a time:
//
//	connect -> banner -> HELO -> MAIL FROM -> RCPT TO(target) -> RCPT TO(random)
//
// A definitive 250 on the target RCPT means deliverable; 550 means not;
// anything else is unknown. The second RCPT, to an address that cannot
// exist, detects catch-all servers.
func (p *Prober) Probe(ctx context.Context, email, domain, mxHost string) types.SMTPProbe {
	if p.cfg.Limiter != nil {
		if err := p.cfg.Limiter.Wait(ctx, domain); err != nil {
			return types.SMTPProbe{
				Deliverable: types.DeliverableNo,
				Reason:      "probe cancelled: " + err.Error(),
			}
		}
	}

	conn, err := p.cfg.Dial("tcp", net.JoinHostPort(mxHost, p.cfg.Port), p.cfg.Timeout)
	if err != nil {
		return failure(err)
	}
	defer conn.Close()

	// One deadline covers the entire dialogue.
	if err := conn.SetDeadline(time.Now().Add(p.cfg.Timeout)); err != nil {
		return failure(err)
	}

	s := session{
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}

	var probe types.SMTPProbe
	probe.Deliverable = types.DeliverableUnknown

	// Banner
	code, banner, err := s.read()
	if err != nil {
		return failure(err)
	}
	probe.Banner = banner
	probe.TLSSupported = bannerAdvertisesTLS(banner)
	if !is2xx(code) {
		probe.Reason = fmt.Sprintf("server refused connection: %s", banner)
		return probe
	}

	// HELO
	code, msg, err := s.command("HELO " + p.cfg.FromDomain)
	if err != nil {
		return failure(err)
	}
	if !is2xx(code) {
		probe.Reason = fmt.Sprintf("HELO rejected: %s", msg)
		return probe
	}

	// MAIL FROM
	code, msg, err = s.command(fmt.Sprintf("MAIL FROM:<verify@%s>", p.cfg.FromDomain))
	if err != nil {
		return failure(err)
	}
	if !is2xx(code) {
		probe.Reason = fmt.Sprintf("MAIL FROM rejected: %s", msg)
		return probe
	}

	// RCPT TO, the recipient under test
	code, msg, err = s.command(fmt.Sprintf("RCPT TO:<%s>", email))
	if err != nil {
		return failure(err)
	}
	probe.Response = msg
	switch {
	case code == 250:
		probe.Deliverable = types.DeliverableYes
	case code == 550:
		probe.Deliverable = types.DeliverableNo
		probe.Reason = "recipient rejected by server"
		s.quit()
		return probe
	default:
		probe.Deliverable = types.DeliverableUnknown
		probe.Reason = msg
		s.quit()
		return probe
	}

	// RCPT TO an address that cannot exist: acceptance means catch-all.
	random := fmt.Sprintf("nonexistent-%d@%s", p.cfg.Now().UnixMilli(), domain)
	code, _, err = s.command(fmt.Sprintf("RCPT TO:<%s>", random))
	if err == nil && is2xx(code) {
		probe.CatchAll = true
	}
	s.quit()
	return probe
}

// failure maps transport errors to the no-with-reason outcome.
func failure(err error) types.SMTPProbe {
	reason := "connection error: " + err.Error()
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		reason = "timeout"
	}
	return types.SMTPProbe{
		Deliverable: types.DeliverableNo,
		Reason:      reason,
	}
}

func is2xx(code int) bool { return code >= 200 && code < 300 }

func bannerAdvertisesTLS(banner string) bool {
	b := strings.ToLower(banner)
	return strings.Contains(b, "starttls") || strings.Contains(b, "tls")
}

// session is one SMTP client conversation over a buffered connection.
type session struct {
	reader *bufio.Reader
	writer *bufio.Writer
}

// command sends one SMTP command line and reads the response.
func (s *session) command(cmd string) (int, string, error) {
	if _, err := s.writer.WriteString(cmd + "\r\n"); err != nil {
		return 0, "", err
	}
	if err := s.writer.Flush(); err != nil {
		return 0, "", err
	}
	return s.read()
}

// quit sends a QUIT command (best-effort, ignores errors).
func (s *session) quit() {
	_, _ = s.writer.WriteString("QUIT\r\n")
	_ = s.writer.Flush()
}

// read consumes a (possibly multi-line) SMTP response.
func (s *session) read() (code int, full string, err error) {
	var lines []string
	for {
		line, readErr := s.reader.ReadString('\n')
		if readErr != nil {
			return 0, "", fmt.Errorf("read SMTP response: %w", readErr)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 3 {
			return 0, "", errors.New("SMTP response line too short")
		}
		lines = append(lines, line)
		// If the 4th character is not '-', this is the last line
		if len(line) < 4 || line[3] != '-' {
			break
		}
	}

	lastLine := lines[len(lines)-1]
	if _, err := fmt.Sscanf(lastLine[:3], "%d", &code); err != nil {
		return 0, "", fmt.Errorf("invalid SMTP response code %q: %w", lastLine[:3], err)
	}
	return code, strings.Join(lines, " | "), nil
}
