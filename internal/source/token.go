package source

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/org-chart-api/internal/domain"
)

// TokenChecker отсекает заведомо непригодные токены до обращения к сервису.
// Подпись не проверяется: секрет есть только у выдавшего токен сервиса.
type TokenChecker struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenChecker создаёт проверку токенов
func NewTokenChecker() *TokenChecker {
	return &TokenChecker{parser: jwt.NewParser(), now: time.Now}
}

// Check возвращает ErrTokenMalformed или ErrTokenExpired, если токен не пройдёт на сервисе
func (c *TokenChecker) Check(token string) error {
	if token == "" {
		return domain.ErrTokenRequired
	}

	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	if exp != nil && !c.now().Before(exp.Time) {
		return domain.ErrTokenExpired
	}

	return nil
}

// CheckedSource проверяет токен перед обращением к вложенному источнику
type CheckedSource struct {
	next    Source
	checker *TokenChecker
}

// NewCheckedSource оборачивает источник проверкой токена
func NewCheckedSource(next Source, checker *TokenChecker) *CheckedSource {
	return &CheckedSource{next: next, checker: checker}
}

func (s *CheckedSource) Fetch(ctx context.Context, token string) (*domain.Snapshot, error) {
	if err := s.checker.Check(token); err != nil {
		return nil, err
	}
	return s.next.Fetch(ctx, token)
}
