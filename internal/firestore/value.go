package firestore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	fs "cloud.google.com/go/firestore"
	"golang.org/x/exp/slices"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntegerKind
	DoubleKind
	StringKind
	BytesKind
	TimestampKind
	GeoPointKind
	ReferenceKind
	ArrayKind
	MapKind
)

var kindNames = [...]string{
	NullKind:      "null",
	BoolKind:      "boolean",
	IntegerKind:   "integer",
	DoubleKind:    "double",
	StringKind:    "string",
	BytesKind:     "bytes",
	TimestampKind: "timestamp",
	GeoPointKind:  "geopoint",
	ReferenceKind: "reference",
	ArrayKind:     "array",
	MapKind:       "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a single schema-less document field.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string // string contents or reference path
	raw  []byte
	t    time.Time
	lat  float64
	lng  float64
	arr  []Value
	m    map[string]Value
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }
func Integer(i int64) Value { return Value{kind: IntegerKind, i: i} }
func Double(f float64) Value { return Value{kind: DoubleKind, f: f} }
func String(s string) Value { return Value{kind: StringKind, s: s} }
func Bytes(b []byte) Value { return Value{kind: BytesKind, raw: b} }
func Timestamp(t time.Time) Value { return Value{kind: TimestampKind, t: t} }
func Reference(path string) Value { return Value{kind: ReferenceKind, s: path} }
func Array(vs ...Value) Value { return Value{kind: ArrayKind, arr: vs} }
func Map(m map[string]Value) Value { return Value{kind: MapKind, m: m} }
func GeoPoint(lat, lng float64) Value {
	return Value{kind: GeoPointKind, lat: lat, lng: lng}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == NullKind }
func (v Value) BoolValue() bool { return v.b }
func (v Value) IntegerValue() int64 { return v.i }
func (v Value) DoubleValue() float64 { return v.f }
func (v Value) StringValue() string { return v.s }
func (v Value) BytesValue() []byte { return v.raw }
func (v Value) TimestampValue() time.Time { return v.t }
func (v Value) ReferencePath() string { return v.s }
func (v Value) ArrayValue() []Value { return v.arr }
func (v Value) MapValue() map[string]Value { return v.m }
func (v Value) GeoPointValue() (lat, lng float64) {
	return v.lat, v.lng
}

// Equal reports whether two values hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case IntegerKind:
		return v.i == o.i
	case DoubleKind:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case StringKind, ReferenceKind:
		return v.s == o.s
	case BytesKind:
		return string(v.raw) == string(o.raw)
	case TimestampKind:
		return v.t.Equal(o.t)
	case GeoPointKind:
		return v.lat == o.lat && v.lng == o.lng
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, x := range v.m {
			y, ok := o.m[k]
			if !ok || !x.Equal(y) {
				return false
			}
		}
		return true
	}
	return false
}

// FromInterface converts a value produced by DocumentSnapshot.Data into a Value.
func FromInterface(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Integer(int64(t)), nil
	case int32:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	case float32:
		return Double(float64(t)), nil
	case float64:
		return Double(t), nil
	case string:
		return String(t), nil
	case []byte:
		return Bytes(t), nil
	case time.Time:
		return Timestamp(t), nil
	case *latlng.LatLng:
		if t == nil {
			return Null(), nil
		}
		return GeoPoint(t.GetLatitude(), t.GetLongitude()), nil
	case *fs.DocumentRef:
		if t == nil {
			return Null(), nil
		}
		return Reference(RelativePath(t.Path)), nil
	case []interface{}:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := FromInterface(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			arr[i] = v
		}
		return Array(arr...), nil
	case map[string]interface{}:
		m, err := FromData(t)
		if err != nil {
			return Value{}, err
		}
		return Map(m), nil
	}
	return Value{}, fmt.Errorf("unsupported field value type %T", x)
}

// FromData converts a whole document field mapping.
func FromData(data map[string]interface{}) (map[string]Value, error) {
	m := make(map[string]Value, len(data))
	for k, e := range data {
		v, err := FromInterface(e)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		m[k] = v
	}
	return m, nil
}

// RelativePath strips the "projects/*/databases/*/documents/" prefix from a resource path.
func RelativePath(path string) string {
	if _, rest, ok := strings.Cut(path, "/documents/"); ok {
		return rest
	}
	return path
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case BoolKind:
		return json.Marshal(v.b)
	case IntegerKind:
		return json.Marshal(v.i)
	case DoubleKind:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			// JSON has no representation for these.
			return json.Marshal(Repr(v))
		}
		return json.Marshal(v.f)
	case StringKind, ReferenceKind:
		return json.Marshal(v.s)
	case BytesKind:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.raw))
	case TimestampKind:
		return json.Marshal(v.t.UTC().Format(time.RFC3339Nano))
	case GeoPointKind:
		return json.Marshal(struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}{v.lat, v.lng})
	case ArrayKind:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case MapKind:
		if v.m == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.m)
	}
	return nil, fmt.Errorf("MarshalJSON: unknown kind %s", v.kind)
}
