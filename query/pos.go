package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos locates a byte offset within query source text.
type Pos struct {
	Off int
	Src string
}

// LineCol derives the 1-based line and column of the offset. Query
// sources are one line in practice, but embedded newlines in string
// literals are counted anyway.
func (p Pos) LineCol() (int, int) {
	line := 1
	col := 1
	for i := 0; i < p.Off && i < len(p.Src); i++ {
		if p.Src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func (p Pos) String() string {
	lo := max(0, p.Off-5)
	hi := min(p.Off+5, len(p.Src))
	sample := strconv.Quote(p.Src[lo:hi])
	sample = sample[1 : len(sample)-1]
	line, col := p.LineCol()
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.Off, line, col)
}

const reserved = "!&.<=>?[]~"

func isReserved(c byte) bool {
	return strings.IndexByte(reserved, c) != -1
}

// EscapeProperty quotes the reserved query characters in a property
// name with '~' so the result can appear in query source.
func EscapeProperty(name string) string {
	if strings.IndexAny(name, reserved+" \t") == -1 {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isReserved(c) || c == ' ' || c == '\t' {
			b.WriteByte('~')
		}
		b.WriteByte(c)
	}
	return b.String()
}
