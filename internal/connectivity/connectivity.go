// Package connectivity watches whether the backend host is reachable and
// reports online/offline transitions.
package connectivity

import (
	"context"
	"errors"
	"net"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/connectivity/config"
)

const (
	DefaultProbeInterval = 5 * time.Second
	dialTimeout          = 2 * time.Second
)

var ErrNoHost = errors.New("api url has no host")

type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Watcher периодически открывает TCP-соединение с хостом API.
// onChange вызывается только при смене состояния, начальное состояние - online.
type Watcher struct {
	address  string
	interval time.Duration
	dial     DialFunc
	onChange func(online bool)
	zaplog   *zap.Logger

	mu     sync.Mutex
	online bool
}

func NewWatcher(cfg config.Config, apiURL string, onChange func(online bool), zaplog *zap.Logger) (*Watcher, error) {
	address, err := hostPort(apiURL)
	if err != nil {
		return nil, err
	}
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if onChange == nil {
		onChange = func(bool) {}
	}
	dialer := &net.Dialer{Timeout: dialTimeout}
	return &Watcher{
		address:  address,
		interval: interval,
		dial:     dialer.DialContext,
		onChange: onChange,
		zaplog:   zaplog,
		online:   true,
	}, nil
}

// hostPort извлекает host:port из адреса API, порт по умолчанию - по схеме.
func hostPort(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", ErrNoHost
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Run проверяет доступность до отмены ctx.
func (watcher *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(watcher.interval)
	defer ticker.Stop()

	watcher.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			watcher.Probe(ctx)
		}
	}
}

// Probe выполняет одну проверку и возвращает текущее состояние.
func (watcher *Watcher) Probe(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	online := true
	conn, err := watcher.dial(dialCtx, "tcp", watcher.address)
	if err != nil {
		if ctx.Err() != nil {
			return watcher.Online()
		}
		watcher.zaplog.Debug("api host unreachable", zap.String("address", watcher.address), zap.Error(err))
		online = false
	} else {
		conn.Close()
	}

	watcher.mu.Lock()
	changed := watcher.online != online
	watcher.online = online
	watcher.mu.Unlock()

	if changed {
		watcher.zaplog.Info("connectivity changed", zap.Bool("online", online))
		watcher.onChange(online)
	}
	return online
}

func (watcher *Watcher) Online() bool {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.online
}
