package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/auth/config"
)

// Auth - общий на процесс токен доступа к backend.
// Вход в систему не реализован: токен только хранится и прикладывается к запросам.
type Auth interface {
	SetToken(token string)
	Token() string
	Clear()
	Claims() (*jwt.RegisteredClaims, error)
	Middleware(zaplog *zap.Logger) resty.RequestMiddleware
}

var (
	ErrNoToken = errors.New("no token")
	ErrOpaque  = errors.New("token is not a JWT")
)

type auth struct {
	mu    sync.RWMutex
	token string
	now   func() time.Time
}

func NewAuth(cfg config.Config) Auth {
	return &auth{token: cfg.Token, now: time.Now}
}

func (a *auth) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *auth) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *auth) Clear() {
	a.SetToken("")
}

// Claims разбирает токен без проверки подписи: подпись проверяет backend.
func (a *auth) Claims() (*jwt.RegisteredClaims, error) {
	token := a.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrOpaque, err)
	}
	return claims, nil
}

// Middleware прикладывает Authorization: Bearer к каждому исходящему запросу, если токен задан.
func (a *auth) Middleware(zaplog *zap.Logger) resty.RequestMiddleware {
	return func(_ *resty.Client, r *resty.Request) error {
		token := a.Token()
		if token == "" {
			return nil
		}
		r.SetAuthToken(token)

		claims, err := a.Claims()
		if err != nil {
			return nil
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(a.now()) {
			zaplog.Warn("attaching expired token",
				zap.String("subject", claims.Subject),
				zap.Time("expires_at", claims.ExpiresAt.Time),
			)
		}
		return nil
	}
}
