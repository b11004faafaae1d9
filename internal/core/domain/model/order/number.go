package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-HJKMNP-TV-Z]{6}$`)

// Number is the human-facing order reference, e.g. ORD-20260114-7F3K9Q.
type Number struct {
	value string
}

// NewNumber derives a reference from the UTC date of at and a random suffix.
func NewNumber(at time.Time) Number {
	raw := kernel.NewUUID().Bytes()
	var suffix strings.Builder
	for _, b := range raw[:6] {
		suffix.WriteByte(crockford[int(b)%len(crockford)])
	}
	return Number{value: fmt.Sprintf("ORD-%s-%s", at.UTC().Format("20060102"), suffix.String())}
}

func ParseNumber(s string) (Number, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !numberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order_number", fmt.Errorf("%q is not an order number", s))
	}
	return Number{value: s}, nil
}

func (n Number) String() string {
	return n.value
}

func (n Number) IsZero() bool {
	return n.value == ""
}
