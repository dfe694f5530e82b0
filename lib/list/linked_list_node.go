package list

// Node is a single element of the doubly linked list.
// The next link owns the successor. The prev link is only
// a back reference used for reverse traversal.
type Node struct {
	prev, next *Node
	listRef    *doublyLinkedList
	Value      int
}

func newNode(v int, list *doublyLinkedList) *Node {
	return &Node{
		Value:   v,
		listRef: list,
	}
}

// detach clears all references, so a removed node keeps nothing alive.
func (n *Node) detach() {
	n.prev = nil
	n.next = nil
	n.listRef = nil
}

func (n *Node) HasNext() bool {
	if n == nil {
		return false
	}
	return n.next != nil
}

func (n *Node) HasPrev() bool {
	if n == nil {
		return false
	}
	return n.prev != nil
}

func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

func (n *Node) Prev() *Node {
	if n == nil {
		return nil
	}
	return n.prev
}
