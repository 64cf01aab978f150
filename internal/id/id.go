package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID for the current wall clock.
func New() string {
	return At(time.Now())
}

// At returns a ULID whose time component is t. IDs minted within the same
// millisecond stay lexicographically increasing, so sorting order IDs
// sorts the order log. Times a ULID cannot encode (before the epoch or
// after year 10889) are replaced by the wall clock.
func At(t time.Time) string {
	if !Encodable(t) {
		t = time.Now()
	}

	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// entropy failure
		panic(err)
	}
	return id.String()
}

// Encodable reports whether t fits in a ULID timestamp.
func Encodable(t time.Time) bool {
	return !t.Before(time.UnixMilli(0)) && !t.After(ulid.Time(ulid.MaxTime()))
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
