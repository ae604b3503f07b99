package microlisp

import (
	"iter"
	"strings"
)

// Immutable singly-linked list. Nodes are shared between lists and never
// modified after construction. The empty list is a node with neither head nor
// tail; every non-empty chain ends in one.
type List struct {
	head Value
	tail *List
}

// Builds a list holding items in order.
func NewList(items ...Value) *List {
	list := &List{}
	for i := len(items) - 1; i >= 0; i -= 1 {
		list = list.Cons(items[i])
	}
	return list
}

func (self *List) Typename() string {
	return "list"
}

func (self *List) String() string {
	s := make([]string, 0)
	for element := range self.All() {
		s = append(s, element.String())
	}
	return "(" + strings.Join(s, " ") + ")"
}

func (self *List) Equal(other Value) bool {
	othr, ok := other.(*List)
	if !ok {
		return false
	}

	a, b := self, othr
	for !a.IsEmpty() && !b.IsEmpty() {
		if !a.head.Equal(b.head) {
			return false
		}
		a, b = a.tail, b.tail
	}
	return a.IsEmpty() && b.IsEmpty()
}

func (self *List) CombEncode(e *CombEncoder) error {
	if self.IsEmpty() {
		e.writeString("()")
		return e.err
	}

	e.writeString("(")
	if e.indentText != nil {
		e.writeEndOfLine()
	}
	e.indentLevel += 1

	for cur := self; !cur.IsEmpty(); cur = cur.tail {
		e.writeIndent("")
		cur.head.CombEncode(e)

		if !cur.tail.IsEmpty() {
			e.writeEndOfLine()
		} else if e.indentText != nil {
			e.writeEndOfLine()
		}
	}

	e.indentLevel -= 1
	e.writeIndent(")")

	return e.err
}

func (self *List) IsEmpty() bool {
	return self.tail == nil
}

// Returns nil for the empty list.
func (self *List) Car() Value {
	return self.head
}

// Returns nil for the empty list.
func (self *List) Cdr() *List {
	return self.tail
}

func (self *List) Cons(item Value) *List {
	return &List{head: item, tail: self}
}

func (self *List) Len() int {
	count := 0
	for cur := self; !cur.IsEmpty(); cur = cur.tail {
		count += 1
	}
	return count
}

func (self *List) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for cur := self; !cur.IsEmpty(); cur = cur.tail {
			if !yield(cur.head) {
				return
			}
		}
	}
}

func (self *List) Slice() []Value {
	elements := make([]Value, 0)
	for element := range self.All() {
		elements = append(elements, element)
	}
	return elements
}

func (self *List) Reverse() *List {
	result := &List{}
	for element := range self.All() {
		result = result.Cons(element)
	}
	return result
}

// Returns the elements of self followed by the elements of other. The result
// shares other's nodes.
func (self *List) Concat(other *List) *List {
	result := other
	for element := range self.Reverse().All() {
		result = result.Cons(element)
	}
	return result
}
