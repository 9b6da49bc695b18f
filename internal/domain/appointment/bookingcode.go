package appointment

import (
	"crypto/rand"
	"io"
	"math/big"
	"regexp"
)

const (
	BookingCodePrefix   = "PDC"
	BookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingCodeRandLen  = 7
)

var bookingCodePattern = regexp.MustCompile(`^PDC[A-Z0-9]{7}$`)

// BookingCodeGenerator issues patient-facing confirmation codes.
// It keeps no state; uniqueness is checked by the caller against the store.
type BookingCodeGenerator struct {
	rand io.Reader
}

func NewBookingCodeGenerator() *BookingCodeGenerator {
	return &BookingCodeGenerator{rand: rand.Reader}
}

// NewBookingCodeGeneratorFrom draws entropy from r instead of crypto/rand.
func NewBookingCodeGeneratorFrom(r io.Reader) *BookingCodeGenerator {
	return &BookingCodeGenerator{rand: r}
}

func (g *BookingCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(BookingCodeAlphabet)))

	buf := make([]byte, 0, len(BookingCodePrefix)+bookingCodeRandLen)
	buf = append(buf, BookingCodePrefix...)
	for i := 0; i < bookingCodeRandLen; i++ {
		n, err := rand.Int(g.rand, max)
		if err != nil {
			return "", err
		}
		buf = append(buf, BookingCodeAlphabet[n.Int64()])
	}
	return string(buf), nil
}

func IsBookingCode(s string) bool {
	return bookingCodePattern.MatchString(s)
}
