package check_test

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jaainil/vivid-valid/check"
	"github.com/jaainil/vivid-valid/types"
)

// fakeSMTPServer simulates an SMTP server on one end of a net.Pipe.
// The second RCPT TO (the catch-all probe) gets catchAllResp.
func fakeSMTPServer(server net.Conn, banner string, responses map[string]string, catchAllResp string) {
	defer func() { _ = server.Close() }()

	_, _ = fmt.Fprintf(server, "%s\r\n", banner)

	rcpts := 0
	buf := make([]byte, 4096)
	for {
		n, err := server.Read(buf)
		if err != nil {
			return
		}
		cmd := string(buf[:n])

		if strings.HasPrefix(cmd, "QUIT") {
			_, _ = fmt.Fprintf(server, "221 Bye\r\n")
			return
		}
		if strings.HasPrefix(cmd, "RCPT TO") {
			rcpts++
			if rcpts == 2 && catchAllResp != "" {
				_, _ = fmt.Fprintf(server, "%s\r\n", catchAllResp)
				continue
			}
		}
		for prefix, resp := range responses {
			if strings.HasPrefix(cmd, prefix) {
				_, _ = fmt.Fprintf(server, "%s\r\n", resp)
				break
			}
		}
	}
}

func pipeDialer(banner string, responses map[string]string, catchAllResp string) func(string, string, time.Duration) (net.Conn, error) {
	return func(network, address string, timeout time.Duration) (net.Conn, error) {
		client, server := net.Pipe()
		go fakeSMTPServer(server, banner, responses, catchAllResp)
		return client, nil
	}
}

func newTestProber(dial func(string, string, time.Duration) (net.Conn, error)) *check.Prober {
	return check.NewProber(check.ProberConfig{
		FromDomain: "verifier.test",
		Timeout:    2 * time.Second,
		Dial:       dial,
	})
}

func TestProber_Deliverable(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"HELO":      "250 mx.example.com",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "250 OK",
	}, "550 no such user"))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableYes, probe.Deliverable)
	assert.False(t, probe.CatchAll)
	assert.Contains(t, probe.Banner, "mx.example.com")
}

func TestProber_CatchAll(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"HELO":      "250 mx.example.com",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "250 OK",
	}, "250 OK"))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableYes, probe.Deliverable)
	assert.True(t, probe.CatchAll)
}

func TestProber_RecipientRejected(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"HELO":      "250 mx.example.com",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "550 5.1.1 User unknown",
	}, ""))

	probe := p.Probe(context.Background(), "ghost@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableNo, probe.Deliverable)
	assert.Contains(t, probe.Reason, "rejected")
	assert.Contains(t, probe.Response, "User unknown")
}

func TestProber_Indeterminate(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"HELO":      "250 mx.example.com",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "451 4.7.1 Greylisted, try again later",
	}, ""))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableUnknown, probe.Deliverable)
	assert.Contains(t, probe.Reason, "Greylisted")
}

func TestProber_TLSBannerHint(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP STARTTLS ready", map[string]string{
		"HELO":      "250 mx.example.com",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "250 OK",
	}, "550 no"))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.True(t, probe.TLSSupported)
}

func TestProber_ConnectionRefused(t *testing.T) {
	p := newTestProber(func(string, string, time.Duration) (net.Conn, error) {
		return nil, fmt.Errorf("connection refused")
	})

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableNo, probe.Deliverable)
	assert.Contains(t, probe.Reason, "connection error")
}

func TestProber_Timeout(t *testing.T) {
	p := check.NewProber(check.ProberConfig{
		FromDomain: "verifier.test",
		Timeout:    50 * time.Millisecond,
		Dial: func(string, string, time.Duration) (net.Conn, error) {
			client, _ := net.Pipe() // server never speaks
			return client, nil
		},
	})

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableNo, probe.Deliverable)
	assert.Equal(t, "timeout", probe.Reason)
}

func TestProber_BannerRefusal(t *testing.T) {
	p := newTestProber(pipeDialer("554 go away", nil, ""))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableUnknown, probe.Deliverable)
	assert.Contains(t, probe.Reason, "refused connection")
}

func TestProber_MultilineResponse(t *testing.T) {
	p := newTestProber(pipeDialer("220 mx.example.com ESMTP", map[string]string{
		"HELO":      "250-mx.example.com\r\n250-SIZE 35882577\r\n250 OK",
		"MAIL FROM": "250 OK",
		"RCPT TO":   "250 OK",
	}, "550 no"))

	probe := p.Probe(context.Background(), "user@example.com", "example.com", "mx.example.com")
	assert.Equal(t, types.DeliverableYes, probe.Deliverable)
}
