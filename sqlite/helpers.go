package sqlite

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// hashContent computes the xxHash of content as a fixed-width hex string.
func hashContent(content []byte) string {
	h := strconv.FormatUint(xxhash.Sum64(content), 16)
	return strings.Repeat("0", 16-len(h)) + h
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
