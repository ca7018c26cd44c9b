package municipal

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"civicreport-be/models"
)

const referencePrefix = "SPM"

// ErrReferenceExhausted is returned when every attempt produced a reference
// number that is already taken.
var ErrReferenceExhausted = errors.New("could not allocate a unique reference number")

// GenerateReferenceNumber builds SPM-YYYYMMDD-Wnn-XXnnn. The suffix is random,
// so two calls may collide; use ReferenceGenerator when that matters.
// A nil rng uses the global source.
func GenerateReferenceNumber(category models.Category, ward string, now time.Time, rng *rand.Rand) string {
	var suffix int
	if rng != nil {
		suffix = rng.IntN(1000)
	} else {
		suffix = rand.IntN(1000)
	}
	return fmt.Sprintf("%s-%s-W%02d-%s%03d",
		referencePrefix,
		now.Format("20060102"),
		wardNumber(ward),
		categoryPrefix(category),
		suffix,
	)
}

// wardNumber extracts the digits of a ward label ("7", "Ward 07") and keeps
// the last two so the rendered field is always two characters.
func wardNumber(ward string) int {
	var digits strings.Builder
	for _, r := range ward {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n % 100
}

func categoryPrefix(category models.Category) string {
	var b strings.Builder
	for _, r := range string(category) {
		if b.Len() == 2 {
			break
		}
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	for b.Len() < 2 {
		b.WriteByte('X')
	}
	return b.String()
}

// ReferenceGenerator hands out reference numbers that do not collide with
// ones already in use, keeping the human-readable format.
type ReferenceGenerator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	now         func() time.Time
	maxAttempts int
}

func NewReferenceGenerator(rng *rand.Rand, now func() time.Time) *ReferenceGenerator {
	if now == nil {
		now = time.Now
	}
	return &ReferenceGenerator{rng: rng, now: now, maxAttempts: 20}
}

// Next returns a reference number for which exists reports false.
func (g *ReferenceGenerator) Next(ctx context.Context, category models.Category, ward string, exists func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		g.mu.Lock()
		ref := GenerateReferenceNumber(category, ward, g.now(), g.rng)
		g.mu.Unlock()

		if exists == nil {
			return ref, nil
		}
		taken, err := exists(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("check reference %s: %w", ref, err)
		}
		if !taken {
			return ref, nil
		}
	}
	return "", ErrReferenceExhausted
}
