package district

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a content hash of the business list. Two lists with the same
// records in the same order hash equally, so the hash can key derived caches
// that must survive camera-only updates.
func Hash(bs []Business) uint64 {
	d := xxhash.New()
	var buf []byte
	field := func(s string) {
		buf = append(buf[:0], s...)
		buf = append(buf, 0)
		d.Write(buf)
	}
	num := func(n int) {
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, 0)
		d.Write(buf)
	}
	list := func(items []string) {
		num(len(items))
		for _, s := range items {
			field(s)
		}
	}

	num(len(bs))
	for _, b := range bs {
		field(b.ID)
		field(b.Name)
		field(b.Category)
		num(b.GridPosition.X)
		num(b.GridPosition.Y)
		if b.IsOccupied {
			num(1)
		} else {
			num(0)
		}
		num(b.ActiveVisitors)
		if b.Genome == nil {
			num(-1)
			continue
		}
		list(b.Genome.ServicesOffered)
		list(b.Genome.ServicesNeeded)
		field(b.Genome.IndustrySector)
		field(b.Genome.CompanySize)
	}
	return d.Sum64()
}
