package pathtype

import (
	"strings"

	"github.com/google/uuid"
)

// SpecialPrefix starts every special-location reference.
const SpecialPrefix = "::"

// SplitSpecial splits a SpecialFolder string into its leading reference and
// the components that follow it, e.g. `::{GUID}\Music` -> "::{GUID}", ["Music"].
func SplitSpecial(s string) (ref string, rest []string) {
	segs := Split(s)
	if len(segs) == 0 {
		return "", nil
	}
	return segs[0], segs[1:]
}

// SpecialGUID extracts the GUID of a "::{GUID}" reference.
func SpecialGUID(ref string) (uuid.UUID, bool) {
	body := strings.TrimPrefix(strings.TrimSpace(ref), SpecialPrefix)
	id, err := uuid.Parse(body)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NormalizeSpecialRef returns the canonical "::{GUID}" spelling, upper case
// and braced. References that are not GUID keyed are returned trimmed.
func NormalizeSpecialRef(ref string) string {
	id, ok := SpecialGUID(ref)
	if !ok {
		return strings.TrimSpace(ref)
	}
	return SpecialPrefix + "{" + strings.ToUpper(id.String()) + "}"
}
