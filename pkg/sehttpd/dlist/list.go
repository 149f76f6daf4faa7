// Package dlist implements an intrusive circular doubly linked list.
//
// Nodes embed a Node field instead of being wrapped by the container, so
// insertion and removal never allocate. It backs the header queue in
// pkg/sehttpd/httpparse, which must iterate parsed headers in insertion
// order and remove them one at a time during dispatch without touching the
// heap per header.
package dlist

// Node is the embeddable link. The zero value is not a valid node; call
// Init (directly or via List.Init) before use.
type Node struct {
	prev, next *Node
}

// Init makes n a one-element circular list (its own sentinel).
func (n *Node) Init() *Node {
	n.prev = n
	n.next = n
	return n
}

// Next returns the following node: n itself if n is initialized but not in
// a list, nil if n was removed from a list or never initialized.
func (n *Node) Next() *Node {
	return n.next
}

// Empty reports whether n is unlinked (points only to itself).
func (n *Node) Empty() bool {
	return n.next == n || n.next == nil
}

// insertAfter splices n in immediately after at.
func insertAfter(at, n *Node) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

// remove unlinks n from whatever list it's in. Safe to call twice.
func remove(n *Node) {
	if n.prev == nil || n.next == nil {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// List is a sentinel head for an intrusive doubly linked list of *Node.
type List struct {
	head Node
}

// Init resets l to empty. Must be called before first use.
func (l *List) Init() *List {
	l.head.Init()
	return l
}

// Empty reports whether the list has no elements.
func (l *List) Empty() bool {
	return l.head.next == &l.head || l.head.next == nil
}

// PushFront inserts n as the first element.
func (l *List) PushFront(n *Node) {
	insertAfter(&l.head, n)
}

// PushBack inserts n as the last element.
func (l *List) PushBack(n *Node) {
	insertAfter(l.head.prev, n)
}

// Remove unlinks n from the list.
func (l *List) Remove(n *Node) {
	remove(n)
}

// Front returns the first node, or nil if the list is empty.
func (l *List) Front() *Node {
	if l.Empty() {
		return nil
	}
	return l.head.next
}

// Do calls f for every node in insertion order. f may remove the current
// node (and only the current node) from the list without corrupting the
// traversal; removing any other node during the walk is unsupported.
func (l *List) Do(f func(*Node)) {
	if l.head.next == nil {
		return
	}
	n := l.head.next
	for n != &l.head {
		next := n.next
		f(n)
		n = next
	}
}
