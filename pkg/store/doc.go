// Package store implements the graph store: the single source of truth for
// every node and edge of an editor session, the group membership index and
// the current drill-down focus.
//
// # Canonical and visible state
//
// The store keeps all nodes and edges in insertion-ordered collections keyed
// by id, regardless of whether they are currently shown. Groups are ordinary
// nodes whose id is a key of the [Membership] index; their members are other
// node ids, always including an Input and an Output boundary node.
//
// What a renderer shows is derived by [Resolve] from the focus:
//
//   - at [Root]: every node that is not a member of any group
//   - focused on group g: exactly the members of g that exist
//
// In both cases an edge is visible only when both endpoints are visible
// nodes. An edge crossing a group boundary is therefore hidden in every
// view.
//
// # Atomicity
//
// Every mutation works on copy-on-write clones of the collections and swaps
// them in only when the whole operation succeeded, after which the visible
// subset is recomputed. A batch passed to [Store.ApplyNodeChanges] is applied
// completely or not at all. Readers always receive copies.
//
// # Notifications
//
// [Store.Subscribe] registers a listener that receives the new [View] after
// every committed mutation. Listeners run synchronously after the store lock
// is released, so they may read from (but should not block) the store.
package store
