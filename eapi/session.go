// Package eapi implements the session over the Arista command API: a
// JSON-RPC 2.0 endpoint that runs CLI command batches and returns their
// structured output. One session serves exactly one reconciliation
// invocation; there is no pooling and no retry.
package eapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/crmarques/eosport/config"
)

const (
	defaultHTTPTimeout = 30 * time.Second

	defaultHTTPPort   = 80
	defaultHTTPSPort  = 443
	defaultLocalPort  = 8080
	defaultSocketPath = "/var/run/command-api.sock"

	// Oldest EOS release with the command API feature set this tool
	// relies on.
	minSupportedRelease = "4.13.7"
)

// Version carries the identity the device reported during connect.
type Version struct {
	Release string
	Model   string
}

type Session struct {
	client   *http.Client
	endpoint string
	username string
	password string
	logger   zerolog.Logger
	version  Version
}

// Connect builds the transport for cfg and verifies it with a
// `show version` round trip. Transport or network failures surface as
// ConnectionError, rejected credentials as AuthenticationError.
func Connect(ctx context.Context, cfg config.Connection, logger zerolog.Logger) (*Session, error) {
	session, err := newSession(cfg, logger)
	if err != nil {
		return nil, err
	}

	results, err := session.Enable(ctx, []string{"show version"})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, internalError("unexpected show version response shape", nil)
	}

	release, _ := results[0]["version"].(string)
	model, _ := results[0]["modelName"].(string)
	session.version = Version{Release: release, Model: model}

	if err := checkMinimumRelease(release); err != nil {
		return nil, err
	}

	session.logger.Info().
		Str("host", cfg.Host).
		Str("transport", cfg.Transport).
		Str("eos_version", release).
		Str("model", model).
		Msg("connected to node")

	return session, nil
}

func newSession(cfg config.Connection, logger zerolog.Logger) (*Session, error) {
	session := &Session{
		username: cfg.Username,
		password: cfg.Password,
		logger:   logger,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	switch cfg.Transport {
	case config.TransportHTTP:
		session.endpoint = "http://" + hostPort(cfg.Host, cfg.Port, defaultHTTPPort) + commandAPIPath
	case config.TransportHTTPS:
		// Switches ship self-signed certificates for the command API.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		session.endpoint = "https://" + hostPort(cfg.Host, cfg.Port, defaultHTTPSPort) + commandAPIPath
	case config.TransportHTTPLocal:
		session.endpoint = "http://" + hostPort("localhost", cfg.Port, defaultLocalPort) + commandAPIPath
		session.username = ""
		session.password = ""
	case config.TransportSocket:
		socketPath := cfg.Host
		if socketPath == "" {
			socketPath = defaultSocketPath
		}
		transport.DialContext = func(ctx context.Context, _ string, _ string) (net.Conn, error) {
			dialer := net.Dialer{}
			return dialer.DialContext(ctx, "unix", socketPath)
		}
		session.endpoint = "http://localhost" + commandAPIPath
		session.username = ""
		session.password = ""
	default:
		return nil, validationError(fmt.Sprintf("unsupported transport %q", cfg.Transport), nil)
	}

	if cfg.Transport == config.TransportHTTP || cfg.Transport == config.TransportHTTPS {
		if cfg.Host == "" {
			return nil, validationError("connection must define a host", nil)
		}
	}

	session.client = &http.Client{
		Timeout:   defaultHTTPTimeout,
		Transport: transport,
	}
	return session, nil
}

func hostPort(host string, port int, defaultPort int) string {
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Version reports the device identity captured during Connect.
func (s *Session) Version() Version {
	return s.version
}

// Close releases the transport. The session must not be used afterwards.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// Enable runs read commands in enable mode and returns the structured
// output of each command, in order.
func (s *Session) Enable(ctx context.Context, cmds []string) ([]map[string]any, error) {
	wrapped := append([]string{"enable"}, cmds...)
	response, err := s.run(ctx, wrapped, "json")
	if err != nil {
		return nil, err
	}

	results, err := decodeResults(response)
	if err != nil {
		return nil, err
	}
	if len(results) != len(wrapped) {
		return nil, internalError("eapi returned a short result set", nil)
	}
	// Drop the leading enable result.
	return results[1:], nil
}

// Config applies configuration commands inside a configure session. The
// device applies the batch atomically per command; a rejected command
// fails the whole call with CommandError.
func (s *Session) Config(ctx context.Context, cmds []string) error {
	wrapped := append([]string{"enable", "configure"}, cmds...)
	_, err := s.run(ctx, wrapped, "json")
	if err != nil {
		return err
	}

	s.logger.Info().Strs("cmds", cmds).Msg("applied configuration commands")
	return nil
}

func (s *Session) run(ctx context.Context, cmds []string, format string) (*rpcResponse, error) {
	payload, err := json.Marshal(newRunCmdsRequest(cmds, format))
	if err != nil {
		return nil, internalError("failed to encode eapi request", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, internalError("failed to create eapi request", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if s.username != "" {
		request.SetBasicAuth(s.username, s.password)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return nil, connectionError("unable to reach command api endpoint", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, connectionError("failed to read command api response", err)
	}

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return nil, authenticationError("command api rejected the credentials", nil)
	case response.StatusCode >= http.StatusBadRequest:
		return nil, connectionError(
			fmt.Sprintf("command api returned status %d", response.StatusCode), nil)
	}

	return decodeResponse(body)
}

func checkMinimumRelease(release string) error {
	if release == "" {
		return nil
	}

	parsed, err := semver.NewVersion(trimReleaseSuffix(release))
	if err != nil {
		// Lab and custom builds report unparseable versions; accept them.
		return nil
	}

	minimum := semver.MustParse(minSupportedRelease)
	if parsed.LessThan(minimum) {
		return connectionError(
			fmt.Sprintf("EOS release %s is older than minimum supported %s", release, minSupportedRelease),
			nil,
		)
	}
	return nil
}

// trimReleaseSuffix strips the train letter from releases like 4.13.7M
// so they parse as plain semver.
func trimReleaseSuffix(release string) string {
	end := len(release)
	for end > 0 {
		ch := release[end-1]
		if ch >= '0' && ch <= '9' {
			break
		}
		end--
	}
	return release[:end]
}
