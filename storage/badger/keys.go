package badger

import (
	"fmt"

	"github.com/poiesic/grantmatch/core"
)

// Key prefixes for different data types
const (
	grantRecordPrefix  = "grarec"
	grantContentPrefix = "grabyco"
)

// makeGrantKey generates a key for a grant by ID.
func makeGrantKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", grantRecordPrefix, id))
}

// makeGrantContentKey generates a composite key for grant lookup by
// (funding body, title). The parts are joined with the same "|" separator
// core.IDFromContent uses, so ("AB","C") and ("A","BC") stay distinct keys.
// Format: prefix:fundingBody|title
func makeGrantContentKey(fundingBody, title string) []byte {
	prefix := grantContentPrefix + ":"
	totalSize := len(prefix) + len(fundingBody) + 1 + len(title)
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(fundingBody))
	buf[offset] = '|'
	offset++
	copy(buf[offset:], []byte(title))
	return buf
}
