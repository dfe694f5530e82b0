package list

import "iter"

// Note that the linked list is not thread safe.
// It is owned by exactly one caller at a time.

// LinkedList is the doubly linked list interface of int values.
// Indexes are zero-based and counted from the head.
type LinkedList interface {
	Len() int64
	// Front returns the first node of list l or nil if the list is empty.
	Front() *Node
	// Back returns the last node of list l or nil if the list is empty.
	Back() *Node
	// Append inserts a new node with value v at the back of list l and returns it.
	Append(v int) *Node
	// Prepend inserts a new node with value v at the front of list l and returns it.
	Prepend(v int) *Node
	// AppendValue appends the values to the list l in order and returns the new nodes.
	AppendValue(values ...int) []*Node
	// Get returns the node at index.
	// The traversal starts from the head or the tail, whichever is closer.
	Get(index int64) (*Node, bool)
	// Contains reports whether any node of list l holds value v.
	Contains(v int) bool
	// Insert inserts value v so that it ends up at index.
	// The valid range is [0, Len()], Len() means append.
	Insert(index int64, v int) error
	// Remove removes the node at index and returns its value.
	// The valid range is [0, Len()).
	Remove(index int64) (int, error)
	// RemoveNode removes n from list l and returns its value.
	// A node of another list or an already removed node is rejected.
	RemoveNode(n *Node) (int, error)
	// Clear detaches all nodes from list l.
	Clear()
	// All returns the (index, value) pairs from head to tail.
	All() iter.Seq2[int64, int]
	// Backward returns the (index, value) pairs from tail to head.
	Backward() iter.Seq2[int64, int]
	// Foreach traverses the list l and executes function fn for each node.
	// If fn returns an error, the traversal stops and returns the error.
	Foreach(fn func(idx int64, n *Node) error) error
	// ReverseForeach iterates the list in reverse order, calling fn for each node.
	// The idx is the position of the node counted from the head.
	ReverseForeach(fn func(idx int64, n *Node))
	// FindFirst finds the first node that satisfies the compareFn and returns the node and true if found.
	// If compareFn is not provided, it compares the node value with v.
	FindFirst(v int, compareFn ...func(n *Node) bool) (*Node, bool)
	// Values returns a copy of the values from head to tail.
	Values() []int
	String() string
}
