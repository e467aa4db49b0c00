package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "stickynotes"

var (
	ErrTokenMissing          = errors.New("token is missing")
	ErrTokenMalformed        = jwt.ErrTokenMalformed
	ErrTokenSignatureInvalid = jwt.ErrTokenSignatureInvalid
	ErrTokenExpired          = jwt.ErrTokenExpired
	ErrTokenInvalid          = errors.New("token is not valid")
)

// Claims is the payload carried by every access token. The subject holds
// the owner ID in base 10.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is what a verified token resolves to.
type Identity struct {
	OwnerID int64
	Subject string
	Role    string
}

// Verifier checks HMAC signed tokens against a shared secret. It holds no
// state besides the secret and is safe for concurrent use.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses and validates the signature locally. raw may still carry
// the "Bearer " scheme.
func (v *Verifier) Verify(raw string) (*Identity, error) {
	clean := sanitizeToken(raw)
	if clean == "" {
		return nil, ErrTokenMissing
	}

	var claims Claims
	token, err := v.parser.ParseWithClaims(clean, &claims, v.keyfunc)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	ownerID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || ownerID <= 0 {
		return nil, fmt.Errorf("%w: subject %q is not an owner id", ErrTokenInvalid, claims.Subject)
	}

	return &Identity{
		OwnerID: ownerID,
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}

func (v *Verifier) keyfunc(*jwt.Token) (any, error) {
	return v.secret, nil
}

// TokenIssuer signs tokens for the login flow using the same secret the
// Verifier checks against.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(ownerID int64, role string) (string, error) {
	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(ownerID, 10),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// classify maps a parser error onto one of the package errors. jwt's own
// sentinels already carry the cause, so those are returned untouched.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenSignatureInvalid),
		errors.Is(err, ErrTokenExpired):
		return err
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
}

// sanitizeToken strips the auth scheme, matched case-insensitively. A header
// holding only the scheme yields an empty token.
func sanitizeToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, _ := strings.Cut(header, " ")
	if strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}
