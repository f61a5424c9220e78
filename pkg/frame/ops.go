package frame

import (
	"encoding/binary"
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
)

// Cell tags for row keys. Every cell starts with a tag byte, and value
// cells are length-prefixed, so no cell content can run into the next
// cell or impersonate a null.
const (
	nullTag  = 0x00
	valueTag = 0x01
)

// Duplicated reports whether any two rows share identical values across
// all of the given columns jointly. Nulls compare equal to nulls.
func Duplicated(tbl *Table, cols []string) (bool, error) {
	if len(cols) == 0 {
		return false, errors.New("frame: duplicate detection requires at least one column")
	}
	arrs := make([]arrow.Array, len(cols))
	for i, name := range cols {
		a, err := tbl.Column(name)
		if err != nil {
			return false, err
		}
		arrs[i] = a
	}

	n := int(tbl.NumRows())
	seen := make(map[string]struct{}, n)
	var key []byte
	for row := 0; row < n; row++ {
		key = key[:0]
		for _, a := range arrs {
			if a.IsNull(row) {
				key = append(key, nullTag)
				continue
			}
			v := a.ValueStr(row)
			key = append(key, valueTag)
			key = binary.AppendUvarint(key, uint64(len(v)))
			key = append(key, v...)
		}
		k := string(key)
		if _, dup := seen[k]; dup {
			return true, nil
		}
		seen[k] = struct{}{}
	}
	return false, nil
}
