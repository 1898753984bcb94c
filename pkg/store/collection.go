package store

import (
	"maps"
	"slices"
)

// collection is an id-keyed map that remembers insertion order.
type collection[T any] struct {
	order []string
	items map[string]T
}

func (c collection[T]) clone() collection[T] {
	return collection[T]{order: slices.Clone(c.order), items: maps.Clone(c.items)}
}

func (c collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c collection[T]) has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// put inserts or replaces v. New ids are appended.
func (c *collection[T]) put(id string, v T) {
	if c.items == nil {
		c.items = make(map[string]T)
	}
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return true
}

func (c collection[T]) len() int { return len(c.order) }

// values returns the items in insertion order. The items are not copied.
func (c collection[T]) values() []T {
	out := make([]T, len(c.order))
	for i, id := range c.order {
		out[i] = c.items[id]
	}
	return out
}

// Membership maps group node ids to their member node ids. Member lists are
// sets kept in insertion order.
type Membership map[string][]string

// Clone returns a deep copy of m.
func (m Membership) Clone() Membership {
	out := make(Membership, len(m))
	for g, ids := range m {
		out[g] = slices.Clone(ids)
	}
	return out
}

// Contains reports whether id is a member of group g.
func (m Membership) Contains(g, id string) bool {
	return slices.Contains(m[g], id)
}

// Union returns the set of node ids that are a member of any group.
func (m Membership) Union() map[string]bool {
	out := make(map[string]bool)
	for _, ids := range m {
		for _, id := range ids {
			out[id] = true
		}
	}
	return out
}

// ParentOf returns the group that has id as a member, if any.
func (m Membership) ParentOf(id string) (string, bool) {
	for _, g := range slices.Sorted(maps.Keys(m)) {
		if slices.Contains(m[g], id) {
			return g, true
		}
	}
	return "", false
}

// add appends ids missing from group g, creating the group entry if needed.
func (m Membership) add(g string, ids ...string) {
	list := m[g]
	for _, id := range ids {
		if !slices.Contains(list, id) {
			list = append(list, id)
		}
	}
	if list == nil {
		list = []string{}
	}
	m[g] = list
}

// remove deletes ids from group g.
func (m Membership) remove(g string, ids ...string) {
	list, ok := m[g]
	if !ok {
		return
	}
	m[g] = slices.DeleteFunc(slices.Clone(list), func(s string) bool { return slices.Contains(ids, s) })
}
