package firestore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Repr renders a value the way Python's repr renders the equivalent object
// returned by DocumentSnapshot.to_dict. Map keys are emitted in sorted order.
func Repr(v Value) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

// ReprFields renders a whole field mapping as a Python dict.
func ReprFields(fields map[string]Value) string {
	if fields == nil {
		return "None"
	}
	return Repr(Map(fields))
}

func writeRepr(sb *strings.Builder, v Value) {
	switch v.kind {
	case NullKind:
		sb.WriteString("None")
	case BoolKind:
		if v.b {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case IntegerKind:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case DoubleKind:
		sb.WriteString(reprFloat(v.f))
	case StringKind:
		sb.WriteString(reprString(v.s))
	case BytesKind:
		sb.WriteString(reprBytes(v.raw))
	case TimestampKind:
		sb.WriteString(reprDatetime(v))
	case GeoPointKind:
		fmt.Fprintf(sb, "GeoPoint(latitude=%s, longitude=%s)", reprFloat(v.lat), reprFloat(v.lng))
	case ReferenceKind:
		fmt.Fprintf(sb, "DocumentReference(%s)", reprString(v.s))
	case ArrayKind:
		sb.WriteRune('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, e)
		}
		sb.WriteRune(']')
	case MapKind:
		sb.WriteRune('{')
		for i, k := range sortedKeys(v.m) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(reprString(k))
			sb.WriteString(": ")
			writeRepr(sb, v.m[k])
		}
		sb.WriteRune('}')
	}
}

// reprFloat matches float.__repr__: shortest round-trip digits, fixed notation
// for decimal exponents in [-4, 16), and a trailing ".0" on integral values.
func reprFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(sci, "e")
	e, _ := strconv.Atoi(exp)
	if e >= -4 && e < 16 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsAny(s, ".") {
			s += ".0"
		}
		return s
	}
	// Go already writes at least two exponent digits, as Python does.
	return mant + "e" + exp
}

func reprQuote(s string) byte {
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return '"'
	}
	return '\''
}

func reprString(s string) string {
	q := reprQuote(s)
	var sb strings.Builder
	sb.WriteByte(q)
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && w == 1 {
			fmt.Fprintf(&sb, `\x%02x`, s[i])
			i++
			continue
		}
		i += w
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r == ' ' || unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func reprBytes(b []byte) string {
	q := reprQuote(string(b))
	var sb strings.Builder
	sb.WriteByte('b')
	sb.WriteByte(q)
	for _, c := range b {
		switch {
		case c == q || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// reprDatetime mirrors datetime.__repr__, which drops trailing zero seconds
// and microseconds. Firestore timestamps are always rendered in UTC.
func reprDatetime(v Value) string {
	t := v.t.UTC()
	parts := []string{
		strconv.Itoa(t.Year()),
		strconv.Itoa(int(t.Month())),
		strconv.Itoa(t.Day()),
		strconv.Itoa(t.Hour()),
		strconv.Itoa(t.Minute()),
	}
	us := t.Nanosecond() / 1000
	if t.Second() != 0 || us != 0 {
		parts = append(parts, strconv.Itoa(t.Second()))
	}
	if us != 0 {
		parts = append(parts, strconv.Itoa(us))
	}
	return fmt.Sprintf("DatetimeWithNanoseconds(%s, tzinfo=datetime.timezone.utc)", strings.Join(parts, ", "))
}
