// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Distribution is a counter keyed by string that remembers first-insertion
// order. Go map iteration is randomized, but the pipeline summary needs a
// deterministic "first-encountered maximum" tie-break, so the JSON form and
// every traversal follow insertion order.
type Distribution struct {
	keys   []string
	counts map[string]int
}

// NewDistribution returns an empty Distribution.
func NewDistribution() *Distribution {
	return &Distribution{counts: make(map[string]int)}
}

// Inc increments the count for key, registering the key on first sight.
func (d *Distribution) Inc(key string) {
	d.Add(key, 1)
}

// Add increases the count for key by n.
func (d *Distribution) Add(key string, n int) {
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	if _, ok := d.counts[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.counts[key] += n
}

// Count returns the count for key, zero when absent.
func (d *Distribution) Count(key string) int {
	if d == nil {
		return 0
	}
	return d.counts[key]
}

// Keys returns the keys in insertion order.
func (d *Distribution) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of distinct keys.
func (d *Distribution) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Dominant returns the key with the highest count. Ties resolve to the
// first-inserted key. ok is false for an empty or nil distribution.
func (d *Distribution) Dominant() (key string, count int, ok bool) {
	if d == nil || len(d.keys) == 0 {
		return "", 0, false
	}
	key = d.keys[0]
	count = d.counts[key]
	for _, k := range d.keys[1:] {
		if d.counts[k] > count {
			key = k
			count = d.counts[k]
		}
	}
	return key, count, true
}

// TopN returns a new Distribution holding the n highest counts, ordered by
// count descending with first-inserted keys winning ties. When n exceeds
// the key count the whole distribution is returned.
func (d *Distribution) TopN(n int) *Distribution {
	out := NewDistribution()
	if d == nil {
		return out
	}
	ordered := make([]string, len(d.keys))
	copy(ordered, d.keys)
	sort.SliceStable(ordered, func(i, j int) bool {
		return d.counts[ordered[i]] > d.counts[ordered[j]]
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	for _, k := range ordered[:n] {
		out.Add(k, d.counts[k])
	}
	return out
}

// MarshalJSON encodes the distribution as a JSON object whose members
// appear in insertion order.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", d.counts[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving member order as insertion
// order. Fractional counts (a completion artifact) are truncated.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("distribution: expected JSON object, got %v", tok)
	}

	d.keys = nil
	d.counts = make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("distribution: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("distribution: count for %q is not a number", key)
		}
		f, err := num.Float64()
		if err != nil {
			return fmt.Errorf("distribution: count for %q: %w", key, err)
		}
		d.Add(key, int(f))
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
