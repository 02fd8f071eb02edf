package areq

import (
	"net/url"
	"strings"
)

// FormPair is one name/value pair of a form body or query string. Pair order
// is preserved end to end, which is why the form operations take a slice
// instead of a map.
type FormPair struct {
	Name  string
	Value string
}

// Pairs builds a FormPair slice from alternating name, value strings. An
// unpaired trailing name gets an empty value.
func Pairs(nv ...string) []FormPair {
	pairs := make([]FormPair, 0, (len(nv)+1)/2)

	for i := 0; i < len(nv); i += 2 {
		p := FormPair{Name: nv[i]}
		if i+1 < len(nv) {
			p.Value = nv[i+1]
		}
		pairs = append(pairs, p)
	}

	return pairs
}

// encodeForm renders pairs as application/x-www-form-urlencoded in the order
// given. url.Values is no use here: its Encode sorts by key.
func encodeForm(pairs []FormPair) string {
	var b strings.Builder

	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}
