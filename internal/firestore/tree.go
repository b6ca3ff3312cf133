package firestore

import (
	"fmt"
	"strings"
)

func treeElement(name string, indent int, last bool) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", indent))
	if last {
		sb.WriteRune('└')
	} else {
		sb.WriteRune('├')
	}
	sb.WriteString(fmt.Sprintf(" %s", name))
	return sb.String()
}

func pathArrow(path string) string {
	var sb strings.Builder
	sb.WriteString("→(")
	sb.WriteString(path)
	sb.WriteRune(')')
	return sb.String()
}

func treeValue(name string, indent int, last bool, v Value) []string {
	switch v.kind {
	case ReferenceKind:
		return []string{treeElement(name, indent, last) + ": " + pathArrow(v.s)}
	case MapKind:
		lines := []string{treeElement(name, indent, last)}
		keys := sortedKeys(v.m)
		for i, k := range keys {
			lines = append(lines, treeValue(k, indent+2, i == len(keys)-1, v.m[k])...)
		}
		return lines
	case ArrayKind:
		lines := []string{treeElement(name, indent, last)}
		for i, e := range v.arr {
			lines = append(lines, treeValue(fmt.Sprintf("[%d]", i), indent+2, i == len(v.arr)-1, e)...)
		}
		return lines
	}
	return []string{treeElement(name, indent, last) + ": " + Repr(v)}
}

// Tree renders the document as an indented tree, one field per line.
func Tree(d Document) string {
	var sb strings.Builder
	sb.WriteString(d.ID)
	if !d.Exists() {
		sb.WriteString(" (missing)")
		return sb.String()
	}
	keys := sortedKeys(d.Fields)
	for i, k := range keys {
		for _, line := range treeValue(k, 0, i == len(keys)-1, d.Fields[k]) {
			sb.WriteRune('\n')
			sb.WriteString(line)
		}
	}
	return sb.String()
}
