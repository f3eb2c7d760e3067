// Package loads defines load combinations and the registry that assigns each
// combination a stable integer slot for per-combination result storage.
package loads

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
)

// Combination is a named, factored sum of load cases
type Combination struct {
	Name    string
	Tags    []string           // Categorisation, e.g. "strength", "service"
	Factors map[string]float64 // Load case name -> load factor
}

// NewCombination creates a combination; a nil factor map is replaced by an empty one
func NewCombination(name string, tags []string, factors map[string]float64) *Combination {
	if factors == nil {
		factors = make(map[string]float64)
	}
	return &Combination{
		Name:    name,
		Tags:    tags,
		Factors: factors,
	}
}

// AddLoadCase sets the factor for a load case, replacing any previous value
func (c *Combination) AddLoadCase(caseName string, factor float64) {
	if c.Factors == nil {
		c.Factors = make(map[string]float64)
	}
	c.Factors[caseName] = factor
}

// DeleteLoadCase removes a load case from the combination
func (c *Combination) DeleteLoadCase(caseName string) {
	delete(c.Factors, caseName)
}

// Factor returns the factor of a load case and whether the case participates
func (c *Combination) Factor(caseName string) (float64, bool) {
	f, ok := c.Factors[caseName]
	return f, ok
}

// HasTag reports whether the combination carries the given tag
func (c *Combination) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Equal compares name, tags (in order) and factors
func (c *Combination) Equal(o *Combination) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	if c.Name != o.Name || len(c.Tags) != len(o.Tags) || len(c.Factors) != len(o.Factors) {
		return false
	}
	for i := range c.Tags {
		if c.Tags[i] != o.Tags[i] {
			return false
		}
	}
	for k, v := range c.Factors {
		ov, ok := o.Factors[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal: equal combinations hash identically
// regardless of factor map iteration order
func (c *Combination) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeString := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeFloat := func(f float64) {
		if f == 0 {
			f = 0 // -0 == 0 under Equal
		}
		bits := math.Float64bits(f)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}

	writeString(c.Name)
	for _, t := range c.Tags {
		writeString(t)
	}
	h.Write([]byte{0xff})
	for _, k := range c.caseNames() {
		writeString(k)
		writeFloat(c.Factors[k])
	}
	return h.Sum64()
}

// caseNames returns the load case names sorted
func (c *Combination) caseNames() []string {
	names := make([]string, 0, len(c.Factors))
	for k := range c.Factors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (c *Combination) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString(" = ")
	for i, k := range c.caseNames() {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(fmt.Sprintf("%g*%s", c.Factors[k], k))
	}
	if len(c.Tags) > 0 {
		sb.WriteString(fmt.Sprintf(" %v", c.Tags))
	}
	return sb.String()
}
