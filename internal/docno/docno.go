// Package docno assigns human-readable document numbers such as
// QT-202610-0042.
package docno

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Generator builds document numbers from a prefix, the current month and a
// random 4-digit suffix. Numbers are not deduplicated; callers rely on a
// unique constraint at write time.
type Generator struct {
	Now  func() time.Time
	IntN func(n int) int
}

// New returns a Generator backed by the wall clock and math/rand/v2.
func New() *Generator {
	return &Generator{Now: time.Now, IntN: rand.IntN}
}

// Next returns a number of the form PREFIX-YYYYMM-RRRR.
func (g *Generator) Next(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return fmt.Sprintf("%s-%s-%04d", prefix, g.Now().Format("200601"), g.IntN(10000))
}
