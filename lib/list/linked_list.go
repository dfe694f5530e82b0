package list

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/benz9527/dlist/lib/infra"
)

var _ LinkedList = (*doublyLinkedList)(nil) // Type check assertion

var (
	// ErrInvalidIndex means the index is outside the valid range of the operation.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrNilList means the operation is invoked on a nil list reference.
	ErrNilList = errors.New("nil list")
	// ErrEmptyList means there is nothing to traverse.
	ErrEmptyList = errors.New("empty list")
	// ErrNodeNotInList means the node is not owned by the list.
	ErrNodeNotInList = errors.New("node not in list")
)

type nodeInListStatus uint8

const (
	outOfRange nodeInListStatus = iota
	emptyList
	theOnlyOne
	theFirstButNotTheLast
	theLastButNotTheFirst
	inMiddle
)

type doublyLinkedList struct {
	head *Node
	tail *Node
	len  int64
}

func NewLinkedList() LinkedList {
	return new(doublyLinkedList)
}

// NewLinkedListWith creates a list holding values in order.
func NewLinkedListWith(values ...int) LinkedList {
	l := new(doublyLinkedList)
	l.AppendValue(values...)
	return l
}

func (l *doublyLinkedList) Len() int64 {
	if l == nil {
		return 0
	}
	return l.len
}

func (l *doublyLinkedList) Front() *Node {
	if l == nil {
		return nil
	}
	return l.head
}

func (l *doublyLinkedList) Back() *Node {
	if l == nil {
		return nil
	}
	return l.tail
}

// checkIndex classifies an existing position, the range is [0, len).
func (l *doublyLinkedList) checkIndex(index int64) nodeInListStatus {
	switch {
	case l.len == 0:
		return emptyList
	case index < 0 || index >= l.len:
		return outOfRange
	case l.len == 1:
		return theOnlyOne
	case index == 0:
		return theFirstButNotTheLast
	case index == l.len-1:
		return theLastButNotTheFirst
	}
	return inMiddle
}

// get walks at most len/2 steps. The index must be in [0, len).
func (l *doublyLinkedList) get(index int64) *Node {
	mid := l.len / 2
	if index <= mid {
		n := l.head
		for i := int64(0); i < index; i++ {
			n = n.next
		}
		return n
	}
	n := l.tail
	for i := l.len - 1; i > index; i-- {
		n = n.prev
	}
	return n
}

func (l *doublyLinkedList) pushBack(n *Node) *Node {
	if l.len == 0 {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.len++
	return n
}

func (l *doublyLinkedList) pushFront(n *Node) *Node {
	if l.len == 0 {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.len++
	return n
}

// insertBefore splices newN in front of an interior node at.
func (l *doublyLinkedList) insertBefore(newN, at *Node) *Node {
	newN.prev = at.prev
	newN.next = at
	at.prev.next = newN
	at.prev = newN
	l.len++
	return newN
}

func (l *doublyLinkedList) Append(v int) *Node {
	if l == nil {
		return nil
	}
	return l.pushBack(newNode(v, l))
}

func (l *doublyLinkedList) Prepend(v int) *Node {
	if l == nil {
		return nil
	}
	return l.pushFront(newNode(v, l))
}

func (l *doublyLinkedList) AppendValue(values ...int) []*Node {
	if l == nil || len(values) <= 0 {
		return nil
	}
	nodes := make([]*Node, 0, len(values))
	for _, v := range values {
		nodes = append(nodes, l.pushBack(newNode(v, l)))
	}
	return nodes
}

func (l *doublyLinkedList) Get(index int64) (*Node, bool) {
	if l == nil || l.len == 0 || index < 0 || index >= l.len {
		return nil, false
	}
	return l.get(index), true
}

// Contains has no index to shortcut with, so it scans from head to tail.
func (l *doublyLinkedList) Contains(v int) bool {
	_, ok := l.FindFirst(v)
	return ok
}

func (l *doublyLinkedList) Insert(index int64, v int) error {
	if l == nil {
		return infra.WrapErrorStackWithMessage(ErrNilList, "[doubly-linked-list] insert")
	}
	if index < 0 || index > l.len {
		return infra.WrapErrorStackWithMessage(ErrInvalidIndex,
			fmt.Sprintf("[doubly-linked-list] insert at %d out of [0, %d]", index, l.len),
		)
	}

	switch index {
	case 0:
		l.pushFront(newNode(v, l))
	case l.len:
		l.pushBack(newNode(v, l))
	default:
		l.insertBefore(newNode(v, l), l.get(index))
	}
	return nil
}

func (l *doublyLinkedList) Remove(index int64) (int, error) {
	if l == nil {
		return 0, infra.WrapErrorStackWithMessage(ErrNilList, "[doubly-linked-list] remove")
	}

	var at *Node
	switch l.checkIndex(index) {
	case theOnlyOne:
		at = l.head
		l.head, l.tail = nil, nil
	case theFirstButNotTheLast:
		at = l.head
		l.head = at.next
		l.head.prev = nil
	case theLastButNotTheFirst:
		at = l.tail
		l.tail = at.prev
		l.tail.next = nil
	case inMiddle:
		at = l.get(index)
		at.prev.next = at.next
		at.next.prev = at.prev
	default:
		return 0, infra.WrapErrorStackWithMessage(ErrInvalidIndex,
			fmt.Sprintf("[doubly-linked-list] remove at %d out of [0, %d)", index, l.len),
		)
	}

	v := at.Value
	at.detach()
	l.len--
	return v, nil
}

func (l *doublyLinkedList) RemoveNode(n *Node) (int, error) {
	if l == nil {
		return 0, infra.WrapErrorStackWithMessage(ErrNilList, "[doubly-linked-list] remove node")
	}
	if n == nil || n.listRef != l {
		return 0, infra.WrapErrorStackWithMessage(ErrNodeNotInList, "[doubly-linked-list] remove node")
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	v := n.Value
	n.detach()
	l.len--
	return v, nil
}

func (l *doublyLinkedList) Clear() {
	if l == nil || l.len == 0 {
		return
	}
	for n := l.head; n != nil; {
		next := n.next
		n.detach()
		n = next
	}
	l.head, l.tail = nil, nil
	l.len = 0
}

// All reads the links lazily. Ranging again starts over from the current head.
func (l *doublyLinkedList) All() iter.Seq2[int64, int] {
	return func(yield func(int64, int) bool) {
		if l == nil {
			return
		}
		var idx int64
		for n := l.head; n != nil; idx++ {
			next := n.next
			if !yield(idx, n.Value) {
				return
			}
			n = next
		}
	}
}

func (l *doublyLinkedList) Backward() iter.Seq2[int64, int] {
	return func(yield func(int64, int) bool) {
		if l == nil {
			return
		}
		idx := l.len - 1
		for n := l.tail; n != nil; idx-- {
			prev := n.prev
			if !yield(idx, n.Value) {
				return
			}
			n = prev
		}
	}
}

// Foreach, allows remove linked list nodes while iterating.
func (l *doublyLinkedList) Foreach(fn func(idx int64, n *Node) error) error {
	if l == nil {
		return infra.WrapErrorStackWithMessage(ErrNilList, "[doubly-linked-list] foreach")
	}
	if l.len == 0 {
		return infra.WrapErrorStackWithMessage(ErrEmptyList, "[doubly-linked-list] foreach")
	}
	if fn == nil {
		return nil
	}

	var (
		iterator       = l.head
		idx      int64 = 0
	)
	for iterator != nil {
		n := iterator.next
		if err := fn(idx, iterator); err != nil {
			return err
		}
		iterator = n
		idx++
	}
	return nil
}

func (l *doublyLinkedList) ReverseForeach(fn func(idx int64, n *Node)) {
	if l == nil || fn == nil || l.len == 0 {
		return
	}

	var (
		iterator = l.tail
		idx      = l.len - 1
	)
	for iterator != nil {
		p := iterator.prev
		fn(idx, iterator)
		iterator = p
		idx--
	}
}

func (l *doublyLinkedList) FindFirst(targetV int, compareFn ...func(n *Node) bool) (*Node, bool) {
	if l == nil || l.len == 0 {
		return nil, false
	}

	if len(compareFn) <= 0 || compareFn[0] == nil {
		compareFn = []func(n *Node) bool{
			func(n *Node) bool {
				return n.Value == targetV
			},
		}
	}

	for iterator := l.head; iterator != nil; iterator = iterator.next {
		if compareFn[0](iterator) {
			return iterator, true
		}
	}
	return nil, false
}

func (l *doublyLinkedList) Values() []int {
	if l == nil {
		return nil
	}
	values := make([]int, 0, l.len)
	for _, v := range l.All() {
		values = append(values, v)
	}
	return values
}

func (l *doublyLinkedList) String() string {
	builder := strings.Builder{}
	_, _ = builder.WriteString("[")
	for idx, v := range l.All() {
		if idx > 0 {
			_, _ = builder.WriteString(" ")
		}
		_, _ = builder.WriteString(strconv.Itoa(v))
	}
	_, _ = builder.WriteString("] len=")
	_, _ = builder.WriteString(strconv.FormatInt(l.Len(), 10))
	return builder.String()
}
