package secrets

import (
	"math/rand/v2"
	"strings"
)

// Keyspace is the number of distinct phrases Generate can return. At roughly
// 13.6 bits it is meant to be read over the phone, not to resist guessing.
var Keyspace = len(Colors) * len(Places) * len(Animals)

type Generator struct {
	rnd *rand.Rand
}

// NewGenerator draws from src, or from the runtime's random source when src is nil.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		return &Generator{}
	}
	return &Generator{rnd: rand.New(src)}
}

// Generate returns one color, one place and one animal, space-joined.
func (g *Generator) Generate() string {
	return strings.Join([]string{g.pick(Colors), g.pick(Places), g.pick(Animals)}, " ")
}

func (g *Generator) pick(pool []string) string {
	if g.rnd == nil {
		return strings.ToLower(pool[rand.IntN(len(pool))])
	}
	return strings.ToLower(pool[g.rnd.IntN(len(pool))])
}
