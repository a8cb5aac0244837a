package eventbus

import (
	"regexp"
	"strings"
)

// Matcher selects event names for OnMatch subscriptions.
type Matcher func(name string) bool

// FieldChangeSuffix terminates every form field change event name.
const FieldChangeSuffix = ":change"

// FieldChangeName builds the event name a form publishes when one of its
// fields changes, e.g. FieldChangeName("order", "address") is
// "order.address:change".
func FieldChangeName(form, field string) string {
	return form + "." + field + FieldChangeSuffix
}

// FieldChanges matches "<form>.<field>:change" for any non-empty field.
func FieldChanges(form string) Matcher {
	prefix := form + "."
	return func(name string) bool {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, FieldChangeSuffix) {
			return false
		}
		field := strings.TrimSuffix(strings.TrimPrefix(name, prefix), FieldChangeSuffix)
		return field != "" && !strings.ContainsAny(field, ".:")
	}
}

// Prefix matches names starting with prefix.
func Prefix(prefix string) Matcher {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// Regexp matches names accepted by re.
func Regexp(re *regexp.Regexp) Matcher {
	return func(name string) bool {
		return re != nil && re.MatchString(name)
	}
}

// Any matches every event.
func Any() Matcher {
	return func(string) bool { return true }
}
