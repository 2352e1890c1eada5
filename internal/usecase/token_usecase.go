package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Peran yang dikenal middleware.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

var ErrRoleTidakDikenal = errors.New("role harus admin, operator, atau viewer")

// TokenUsecase menerbitkan token JWT untuk petugas desa. Tidak ada login password,
// token dibuat lewat perintah `seeder token` oleh pengelola server.
type TokenUsecase struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenUsecase(secret string, ttl time.Duration) *TokenUsecase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenUsecase{secret: []byte(secret), ttl: ttl}
}

func (u *TokenUsecase) Issue(subject, nama, role string) (string, error) {
	return u.IssueWithTTL(subject, nama, role, u.ttl)
}

func (u *TokenUsecase) IssueWithTTL(subject, nama, role string, ttl time.Duration) (string, error) {
	switch role {
	case RoleAdmin, RoleOperator, RoleViewer:
	default:
		return "", ErrRoleTidakDikenal
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"nama": nama,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.secret)
}
