package esincss

import (
	"encoding/binary"
	"regexp"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

var scopedCount atomic.Uint64

var scopedPrefixRe = regexp.MustCompile(`[\s/\\#{}@():;]`)

// Scoped returns a unique, CSS-safe class name, optionally prefixed with
// a readable label. Unsafe characters in prefix are replaced with "_".
//
//	esincss.Scoped("Button") // "Button_3k2j9d0x1"
func Scoped(prefix string) string {
	id := uuid.New()
	rnd := strconv.FormatUint(binary.BigEndian.Uint64(id[:8])%100_000_000_000, 36)
	suffix := rnd + strconv.FormatUint(scopedCount.Add(1), 10)

	if prefix == "" {
		return "_" + suffix
	}
	return scopedPrefixRe.ReplaceAllString(prefix, "_") + "_" + suffix
}
