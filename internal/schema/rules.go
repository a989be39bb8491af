package schema

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches nothing per value, so a
// single instance serves every rule.
var validate = validator.New()

// Violation is the failure returned by a Rule.
type Violation struct {
	Code    Code
	Message string
}

// Rule checks one trimmed scalar value. It returns the (possibly
// normalized) value, or a non-nil Violation.
type Rule func(value string) (string, *Violation)

// Required fails with MissingField when the value is empty after trimming.
func Required() Rule {
	return func(value string) (string, *Violation) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", &Violation{Code: MissingField, Message: "is required"}
		}
		return value, nil
	}
}

// MaxLength fails with TooLong when the trimmed value has more than n
// characters.
func MaxLength(n int) Rule {
	return func(value string) (string, *Violation) {
		value = strings.TrimSpace(value)
		if utf8.RuneCountInString(value) > n {
			return "", &Violation{
				Code:    TooLong,
				Message: fmt.Sprintf("must not be more than %d characters", n),
			}
		}
		return value, nil
	}
}

// CapitalizedFirstLetter fails with NotCapitalized unless the value equals
// its own capitalized form: first letter upper case, the rest lower case.
// "John" passes; "john" and "JOHN" do not.
func CapitalizedFirstLetter() Rule {
	return func(value string) (string, *Violation) {
		if value != capitalize(value) {
			return "", &Violation{Code: NotCapitalized, Message: "is not capitalized"}
		}
		return value, nil
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// AlphabeticOnly fails with InvalidFormat unless every character is an
// ASCII letter.
func AlphabeticOnly() Rule {
	return func(value string) (string, *Violation) {
		if err := validate.Var(value, "required,alpha"); err != nil {
			return "", &Violation{Code: InvalidFormat, Message: "must contain letters only"}
		}
		return value, nil
	}
}

// EnumMember fails with InvalidFormat when the value is not one of set.
func EnumMember(set ...string) Rule {
	allowed := slices.Clone(set)
	return func(value string) (string, *Violation) {
		if !slices.Contains(allowed, value) {
			return "", &Violation{
				Code:    InvalidFormat,
				Message: fmt.Sprintf("must be one of %q", allowed),
			}
		}
		return value, nil
	}
}

// EmailShape fails with InvalidFormat unless the value is a syntactically
// valid address: local-part@domain, a dot inside the domain, no whitespace.
func EmailShape() Rule {
	return func(value string) (string, *Violation) {
		bad := &Violation{Code: InvalidFormat, Message: "must be a valid email address"}
		if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
			return "", bad
		}
		at := strings.LastIndexByte(value, '@')
		domain := value[at+1:]
		if at <= 0 || !strings.Contains(domain, ".") ||
			strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
			return "", bad
		}
		if err := validate.Var(value, "email"); err != nil {
			return "", bad
		}
		return value, nil
	}
}
