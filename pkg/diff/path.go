package diff

import (
	"strconv"
	"strings"
)

// RootPath is the path identifier of the compared values themselves
const RootPath = "root"

// keyPath appends a mapping key to a path: root['name'], root[3], root[True]
func keyPath(parent string, key Value) string {
	var sb strings.Builder
	sb.WriteString(parent)
	sb.WriteByte('[')
	switch key.kind {
	case String:
		s := key.scalar.(string)
		if strings.ContainsRune(s, '\'') {
			sb.WriteString(strconv.Quote(s))
		} else {
			sb.WriteByte('\'')
			sb.WriteString(s)
			sb.WriteByte('\'')
		}
	case Bool:
		if key.scalar.(bool) {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case Null:
		sb.WriteString("None")
	default:
		sb.WriteString(keyString(key))
	}
	sb.WriteByte(']')
	return sb.String()
}

// indexPath appends a sequence index to a path: root['ports'][2]
func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
