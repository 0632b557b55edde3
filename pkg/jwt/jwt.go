package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL vigencia de los tokens de sesión: 30 días.
const DefaultTTL = 30 * 24 * time.Hour

// ErrMissingSecret se devuelve al firmar o verificar sin secret configurado.
var ErrMissingSecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los datos de presentación del usuario.
// Subject es el ID del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Issuer firma y valida tokens HS256 con un secret compartido.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer construye el emisor. Un ttl <= 0 usa DefaultTTL.
// Con secret vacío el emisor se construye igual y falla en cada Generate/Parse.
func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL devuelve la vigencia configurada.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Generate genera un token JWT firmado con subject = userID y los claims name/email.
func (i *Issuer) Generate(userID, name, email string) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Name:  name,
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrMissingSecret
	}
	opts := []jwt.ParserOption{jwt.WithTimeFunc(i.now)}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token sin subject")
	}
	return claims, nil
}
