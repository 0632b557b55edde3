// Package validation valida los DTOs de entrada antes de tocar el repositorio.
// Sólo se reporta la primera regla incumplida, en el orden de declaración de los campos.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/users-api/internal/domain"
)

// Límites del nombre, contados en runas tras recortar espacios.
const (
	NameMinLength     = 3
	NameMaxLength     = 15
	PasswordMinLength = 8
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messages por "Struct.Campo/tag"; fieldMessages es el respaldo por "campo/tag".
var messages = map[string]string{
	"RegisterRequest.Password/min": "password must be at least 8 characters",
	"SessionRequest.Password/min":  "incorrect password",
}

var fieldMessages = map[string]string{
	"name/name_length":           "name must be between 3 and 15 characters",
	"email/email_shape":          "invalid email",
	"password/min":               "password must be at least 8 characters",
	"password/password_strength": "password must contain a lowercase letter, an uppercase letter, a digit and a symbol, with no spaces",
}

// Validator envuelve go-playground/validator con las reglas propias del servicio.
type Validator struct {
	v *validator.Validate
}

// New registra las etiquetas email_shape, name_length y password_strength.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Los errores sólo ocurren con etiquetas duplicadas o vacías.
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("name_length", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct valida s y devuelve un *domain.ValidationError con la primera regla incumplida.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	first := verrs[0]
	return domain.NewValidationError(first.Field(), messageFor(first))
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := messages[fe.StructNamespace()+"/"+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := fieldMessages[fe.Field()+"/"+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " is invalid"
}

// NormalizeName recorta espacios y aplica NFC para que la longitud cuente caracteres visibles.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsValidName comprueba la longitud 3–15 del nombre normalizado.
func IsValidName(name string) bool {
	n := utf8.RuneCountInString(NormalizeName(name))
	return n >= NameMinLength && n <= NameMaxLength
}

// IsEmail comprueba la forma básica local@dominio.tld.
// Ningún tramo admite espacios Unicode (NBSP, \v, U+2028...) ni BOM; \s de RE2 sólo cubre ASCII.
func IsEmail(email string) bool {
	for _, r := range email {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return false
		}
	}
	return emailPattern.MatchString(email)
}

// IsStrongPassword exige minúscula, mayúscula, dígito y símbolo, sin espacios.
// Símbolo es cualquier carácter fuera de [A-Za-z0-9].
func IsStrongPassword(password string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return utf8.RuneCountInString(password) >= PasswordMinLength && lower && upper && digit && symbol
}
