package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value string
		want  string
		code  Code
	}{
		{name: "required ok", rule: Required(), value: " x ", want: "x"},
		{name: "required blank", rule: Required(), value: "   ", code: MissingField},
		{name: "max length ok", rule: MaxLength(5), value: "abcde", want: "abcde"},
		{name: "max length counts runes", rule: MaxLength(3), value: "äöü", want: "äöü"},
		{name: "max length too long", rule: MaxLength(5), value: "abcdef", code: TooLong},
		{name: "capitalized", rule: CapitalizedFirstLetter(), value: "John", want: "John"},
		{name: "lower first letter", rule: CapitalizedFirstLetter(), value: "john", code: NotCapitalized},
		{name: "all caps", rule: CapitalizedFirstLetter(), value: "JOHN", code: NotCapitalized},
		{name: "single letter", rule: CapitalizedFirstLetter(), value: "J", want: "J"},
		{name: "alpha ok", rule: AlphabeticOnly(), value: "Doe", want: "Doe"},
		{name: "alpha digits", rule: AlphabeticOnly(), value: "Doe2", code: InvalidFormat},
		{name: "alpha space", rule: AlphabeticOnly(), value: "De Silva", code: InvalidFormat},
		{name: "enum ok", rule: EnumMember("a", "b"), value: "b", want: "b"},
		{name: "enum miss", rule: EnumMember("a", "b"), value: "c", code: InvalidFormat},
		{name: "email ok", rule: EmailShape(), value: "a@b.com", want: "a@b.com"},
		{name: "email no at", rule: EmailShape(), value: "not-an-email", code: InvalidFormat},
		{name: "email no dot", rule: EmailShape(), value: "a@localhost", code: InvalidFormat},
		{name: "email whitespace", rule: EmailShape(), value: "a b@c.com", code: InvalidFormat},
		{name: "email empty local", rule: EmailShape(), value: "@c.com", code: InvalidFormat},
		{name: "email trailing dot", rule: EmailShape(), value: "a@b.com.", code: InvalidFormat},
		{name: "email leading dot", rule: EmailShape(), value: "a@.com", code: InvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, v := tt.rule(tt.value)
			if tt.code == "" {
				assert.Nil(t, v)
				assert.Equal(t, tt.want, got)
				return
			}
			if assert.NotNil(t, v) {
				assert.Equal(t, tt.code, v.Code)
			}
		})
	}
}

func TestNodeFirstFailingRuleWins(t *testing.T) {
	n := Composite(F("v", Scalar(Required(), MaxLength(3), CapitalizedFirstLetter())))

	_, errs := n.Validate(map[string]any{"v": "abcdef"})
	assert.Len(t, errs, 1)
	assert.True(t, errs.Has("v", TooLong))

	_, errs = n.Validate(map[string]any{})
	assert.Len(t, errs, 1)
	assert.True(t, errs.Has("v", MissingField))
}

func TestNodeTypeMismatch(t *testing.T) {
	n := Composite(
		F("s", Scalar(Required())),
		F("o", Composite(F("x", Scalar(Required())))),
	)
	_, errs := n.Validate(map[string]any{"s": 12, "o": "flat"})
	assert.Equal(t, Errors{
		{Path: "s", Code: InvalidFormat, Message: "s must be a string"},
		{Path: "o", Code: InvalidFormat, Message: "o must be an object"},
	}, errs)
}

func TestErrorsSummary(t *testing.T) {
	errs := Errors{
		{Path: "a", Code: MissingField},
		{Path: "b", Code: TooLong},
		{Path: "c", Code: InvalidFormat},
		{Path: "d", Code: NotCapitalized},
	}
	msg := errs.Error()
	assert.True(t, strings.HasPrefix(msg, "MissingField at a; TooLong at b; InvalidFormat at c"))
	assert.Contains(t, msg, "(total 4)")
	assert.Empty(t, Errors(nil).Error())
}
