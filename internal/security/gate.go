package security

import (
	"context"
	"errors"
	"strings"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/models"
	"gorm.io/gorm"
)

// Gate resolves the user behind an Authorization header.
type Gate struct {
	db     *gorm.DB
	secret string
}

// NewGate constructs a Gate.
func NewGate(db *gorm.DB, secret string) *Gate {
	return &Gate{db: db, secret: secret}
}

// Resolve validates a "Bearer <token>" header and loads the user it names.
func (g *Gate) Resolve(ctx context.Context, header string) (*models.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, apperr.Unauthenticated("auth.token_missing")
	}

	claims, errParse := ParseUserToken(g.secret, token)
	if errParse != nil {
		if errors.Is(errParse, ErrTokenExpired) {
			return nil, apperr.Unauthenticated("auth.token_expired")
		}
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "auth.token_invalid", errParse)
	}

	var user models.User
	if errFind := g.db.WithContext(ctx).First(&user, claims.UserID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("auth.user_not_found")
		}
		return nil, apperr.Database(errFind)
	}
	return &user, nil
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
