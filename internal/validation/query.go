package validation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ArrayLimit is the highest bracket index still read as a sequence
// element. A larger index turns the parameter into an object.
const ArrayLimit = 20

// objectString is how an object parameter reads as text.
const objectString = "[object Object]"

// Raw is a query parameter exactly as it arrived: one or more strings,
// plus whether the client sent it as a sequence or as an object.
//
// A parameter is a sequence when it is repeated (?n=1&n=2) or written with
// brackets (?n[]=1 or ?n[0]=1), even if only one value is present. It is an
// object when any bracket holds something other than an index up to
// ArrayLimit (?n[x]=1, ?n[25]=1).
type Raw struct {
	Values []string
	Array  bool
	Object bool
}

// Scalar builds a single-valued Raw.
func Scalar(value string) Raw {
	return Raw{Values: []string{value}}
}

// Array builds a sequence Raw.
func Array(values ...string) Raw {
	return Raw{Values: values, Array: true}
}

// Present reports whether the parameter counts as supplied. Any sequence
// or object does, a scalar only when it is not empty.
func (r Raw) Present() bool {
	if r.Array || r.Object {
		return true
	}
	return len(r.Values) > 0 && r.Values[0] != ""
}

// String returns the textual form of the value; sequence elements are
// joined with "," and an object reads as "[object Object]".
func (r Raw) String() string {
	if r.Object {
		return objectString
	}
	return strings.Join(r.Values, ",")
}

// Lookup collects every form of the parameter name from query.
// Plain values come first, then name[], then name[<index>] in index order,
// then any object keys in key order.
func Lookup(query url.Values, name string) Raw {
	var raw Raw

	if plain := query[name]; len(plain) > 0 {
		raw.Values = append(raw.Values, plain...)
		raw.Array = len(plain) > 1
	}

	if bracket, ok := query[name+"[]"]; ok {
		raw.Values = append(raw.Values, bracket...)
		raw.Array = true
	}

	type entry struct {
		key    string
		index  int
		values []string
	}
	var indexed, named []entry
	prefix := name + "["
	for key, values := range query {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") {
			continue
		}
		inner := key[len(prefix) : len(key)-1]
		if inner == "" {
			continue
		}

		index, err := strconv.Atoi(inner)
		if err != nil || index < 0 || index > ArrayLimit || strconv.Itoa(index) != inner {
			named = append(named, entry{key: key, values: values})
			continue
		}
		indexed = append(indexed, entry{key: key, index: index, values: values})
	}

	sort.Slice(indexed, func(i, j int) bool { return indexed[i].index < indexed[j].index })
	for _, e := range indexed {
		raw.Values = append(raw.Values, e.values...)
		raw.Array = true
	}

	if len(named) > 0 {
		sort.Slice(named, func(i, j int) bool { return named[i].key < named[j].key })
		for _, e := range named {
			raw.Values = append(raw.Values, e.values...)
		}
		raw.Array = false
		raw.Object = true
	}

	return raw
}
