// Package hash provides the xxh3 digests used to key cached results and to
// fingerprint allocation output.
package hash

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/woodtho/charge/types"
)

// Key is a 128-bit input digest.
type Key struct {
	Hi uint64
	Lo uint64
}

// String returns the digest as 32 lowercase hex digits.
func (k Key) String() string {
	return fmt.Sprintf("%016x%016x", k.Hi, k.Lo)
}

// Input describes what an allocation result depends on besides the allocator's
// own (fixed) configuration.
type Input struct {
	Records    []types.RoomRecord
	NurseCount int
}

// InputDigest computes a 128-bit digest of in.
//
// Records are digested in room id order, so two inputs that differ only in row
// order share a key. Timestamps are digested with their zone offset because the
// wall clock feeds the effective load.
//
// Parameters:
//   - in: Allocation input
//
// Returns:
//   - Key: Stable digest of the input
func InputDigest(in Input) Key {
	records := slices.Clone(in.Records)
	slices.SortFunc(records, func(a, b types.RoomRecord) int {
		if c := cmp.Compare(a.Room, b.Room); c != 0 {
			return c
		}

		return a.Time.Compare(b.Time)
	})

	h := xxh3.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(in.NurseCount))) //nolint:gosec
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(records)))
	_, _ = h.Write(buf[:])

	for _, r := range records {
		writeString(h, r.Room)
		writeString(h, r.Time.Format(time.RFC3339Nano))
		binary.LittleEndian.PutUint64(buf[:], uint64(tagBits(r.Tags)))
		_, _ = h.Write(buf[:])
	}

	sum := h.Sum128()

	return Key{Hi: sum.Hi, Lo: sum.Lo}
}

// Fingerprint folds the reportable tables into a 64-bit hex digest.
//
// Each field is hashed with the previous hash as seed, so the fingerprint depends
// on row order. Both tables are already in their canonical sort order.
//
// Parameters:
//   - rooms: Per-room table
//   - nurses: Per-nurse table
//
// Returns:
//   - string: 16 lowercase hex digits
func Fingerprint(rooms []types.RoomView, nurses []types.NurseView) string {
	var h uint64
	var buf [8]byte

	fold := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h = xxh3.HashSeed(buf[:], h)
	}

	for _, rv := range rooms {
		h = xxh3.HashStringSeed(rv.Room, h)
		fold(uint64(rv.Time.UnixNano())) //nolint:gosec
		fold(uint64(rv.Nurse))           //nolint:gosec
		fold(uint64(rv.OldestRank))      //nolint:gosec
		fold(uint64(rv.YoungestRank))    //nolint:gosec
		fold(uint64(tagBits(rv.Tags)))
		h = xxh3.HashStringSeed(rv.FormattedTime, h)
	}

	for _, nv := range nurses {
		fold(uint64(nv.Nurse))     //nolint:gosec
		fold(uint64(nv.RoomCount)) //nolint:gosec
		h = xxh3.HashStringSeed(nv.Label, h)
	}

	return fmt.Sprintf("%016x", h)
}

func writeString(h *xxh3.Hasher, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(s)
}

func tagBits(tags types.Tags) uint8 {
	var bits uint8
	for _, tag := range types.AllTags {
		if tags.Has(tag) {
			bits |= 1 << uint(tag) //nolint:gosec
		}
	}

	return bits
}
