package block

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out block identifiers. Generators are owned by a document
// or editing session; there is no process-wide instance.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// Sequence produces prefix1, prefix2, ... and is safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   uint64
}

// NewSequence returns a monotonic generator starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.prefix + strconv.FormatUint(s.next, 10)
	s.next++
	return id
}

// ULIDGenerator produces lexically sortable ids from its own monotonic entropy.
type ULIDGenerator struct {
	entropy *ulid.LockedMonotonicReader
	now     func() time.Time
}

func NewULIDGenerator() *ULIDGenerator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ULIDGenerator{
		entropy: &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rng, 0)},
		now:     time.Now,
	}
}

func (g *ULIDGenerator) NewID() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// UUIDGenerator produces random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// FreshID draws ids from gen until one is not used in d.
func FreshID(gen IDGenerator, d Document) string {
	for {
		id := gen.NewID()
		if id != "" && !d.Has(id) {
			return id
		}
	}
}
