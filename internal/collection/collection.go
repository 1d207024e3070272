// Package collection implements the result graph of a resolution run: every
// instantiated generator, keyed for duplicate detection, with provenance
// links recording which component requested which. A Collection belongs to
// exactly one resolution run and is not safe for concurrent use.
package collection

import (
	"sort"

	"github.com/cmsforge/cmsforge/internal/errors"
	"github.com/cmsforge/cmsforge/internal/generator"
)

// MatchKey identifies a logical component for duplicate detection: the
// component type, the closest root-level ancestor in the requester chain, and
// the generator's own match tag. Two requests producing equal keys refer to
// the same logical entity.
type MatchKey struct {
	ComponentType string
	Root          generator.Generator
	Tag           string
}

type entry struct {
	name      string
	instance  generator.Generator
	requester generator.Generator
	canonical bool
}

// Collection stores generator instances with their provenance. Canonical
// entries are unique per matching key; any number of aliases may resolve to
// the same instance; no instance is ever removed once added.
type Collection struct {
	entries     []entry
	keys        map[generator.Generator]MatchKey
	requesterOf map[generator.Generator]generator.Generator
}

// New creates an empty collection. Construct a fresh one per resolution run.
func New() *Collection {
	return &Collection{
		keys:        make(map[generator.Generator]MatchKey),
		requesterOf: make(map[generator.Generator]generator.Generator),
	}
}

// GetMatching computes the candidate's matching key and returns the existing
// canonical instance with an equal key, or nil. Matching is case-sensitive
// and never crosses root-level ancestors: identical leaf requests under
// different roots stay separate components.
func (c *Collection) GetMatching(candidate generator.Generator, requester generator.Generator) generator.Generator {
	key := c.matchKey(candidate, requester)
	for _, e := range c.entries {
		if !e.canonical {
			continue
		}
		if c.keys[e.instance] == key {
			return e.instance
		}
	}
	return nil
}

// AddComponent registers a new canonical entry under the given local name,
// recording the requester for provenance.
func (c *Collection) AddComponent(name string, instance, requester generator.Generator) error {
	for _, e := range c.entries {
		if e.canonical && e.name == name && e.requester == requester {
			return errors.NewDuplicateNameError(name).WithComponent(instance.Type())
		}
	}
	c.entries = append(c.entries, entry{name: name, instance: instance, requester: requester, canonical: true})
	c.requesterOf[instance] = requester
	c.keys[instance] = c.matchKey(instance, requester)
	return nil
}

// AddAliasedComponent registers name as an additional way to reach an
// already-canonical instance. No new entry slot is created.
func (c *Collection) AddAliasedComponent(name string, instance, requester generator.Generator) {
	c.entries = append(c.entries, entry{name: name, instance: instance, requester: requester, canonical: false})
}

// matchKey derives the duplicate-detection key for a candidate requested by
// requester. The root of the key is the first ancestor in the requester
// chain that has no requester of its own; for the root request it is nil.
func (c *Collection) matchKey(candidate, requester generator.Generator) MatchKey {
	return MatchKey{
		ComponentType: candidate.Type(),
		Root:          c.rootOf(requester),
		Tag:           candidate.MatchTag(),
	}
}

func (c *Collection) rootOf(g generator.Generator) generator.Generator {
	if g == nil {
		return nil
	}
	for {
		parent, ok := c.requesterOf[g]
		if !ok || parent == nil {
			return g
		}
		g = parent
	}
}

// All returns the canonical instances in insertion order.
func (c *Collection) All() []generator.Generator {
	var out []generator.Generator
	for _, e := range c.entries {
		if e.canonical {
			out = append(out, e.instance)
		}
	}
	return out
}

// ByType returns the canonical instances of one component type, in insertion
// order.
func (c *Collection) ByType(componentType string) []generator.Generator {
	var out []generator.Generator
	for _, e := range c.entries {
		if e.canonical && e.instance.Type() == componentType {
			out = append(out, e.instance)
		}
	}
	return out
}

// Get returns the canonical instance registered under a local name, or nil.
func (c *Collection) Get(name string) generator.Generator {
	for _, e := range c.entries {
		if e.canonical && e.name == name {
			return e.instance
		}
	}
	return nil
}

// NamesOf returns every local name resolving to the instance, canonical slot
// included, sorted.
func (c *Collection) NamesOf(instance generator.Generator) []string {
	var names []string
	for _, e := range c.entries {
		if e.instance == instance {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names
}

// RequesterOf returns the component that first requested the instance. The
// root component reports a nil requester.
func (c *Collection) RequesterOf(instance generator.Generator) (generator.Generator, bool) {
	r, ok := c.requesterOf[instance]
	return r, ok
}

// Len returns the number of canonical entries.
func (c *Collection) Len() int {
	n := 0
	for _, e := range c.entries {
		if e.canonical {
			n++
		}
	}
	return n
}

// Root returns the instance created for the root request, or nil.
func (c *Collection) Root() generator.Generator {
	for _, e := range c.entries {
		if e.canonical && e.requester == nil {
			return e.instance
		}
	}
	return nil
}
