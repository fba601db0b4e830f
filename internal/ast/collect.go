package ast

import "iter"

// Collect is a read-only visitor yielding statements matched by match, in
// pre-order over the statement tree. When prune returns true for a
// statement, its children are not visited (but the statement itself may
// still match). prune may be nil to always descend.
func Collect(stmts []Statement, match func(Statement) bool, prune func(Statement) bool) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		var walk func([]Statement) bool
		walk = func(list []Statement) bool {
			for _, s := range list {
				if match(s) {
					if !yield(s) {
						return false
					}
				}
				if prune != nil && prune(s) {
					continue
				}
				var children [][]Statement
				switch n := s.(type) {
				case *If:
					children = [][]Statement{n.Body, n.Orelse}
				case *For:
					children = [][]Statement{n.Body, n.Orelse}
				case *While:
					children = [][]Statement{n.Body, n.Orelse}
				case *With:
					children = [][]Statement{n.Body}
				case *Define:
					children = [][]Statement{n.Body}
				case *Class:
					children = [][]Statement{n.Body}
				case *Try:
					children = [][]Statement{n.Body, n.Orelse, n.Finally}
					for _, h := range n.Handlers {
						children = append(children, h.Body)
					}
				}
				for _, c := range children {
					if !walk(c) {
						return false
					}
				}
			}
			return true
		}
		walk(stmts)
	}
}

// Defines enumerates Define nodes in a statement list. includeNested also
// yields Defines nested inside other Defines/Classes (not just top-level or
// class-method level); otherwise descent stops at each Define, so a
// Define's own body is not searched, while Defines inside Class bodies and
// if/for/while/with/try blocks are still yielded.
func Defines(stmts []Statement, includeNested bool) iter.Seq[*Define] {
	return func(yield func(*Define) bool) {
		for s := range Collect(stmts, func(s Statement) bool {
			_, ok := s.(*Define)
			return ok
		}, func(s Statement) bool {
			if includeNested {
				return false
			}
			if d, ok := s.(*Define); ok {
				return d != nil // stop descending into a Define's own body
			}
			return false
		}) {
			if !yield(s.(*Define)) {
				return
			}
		}
	}
}

// Classes enumerates Class nodes anywhere in the statement list.
func Classes(stmts []Statement) iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		for s := range Collect(stmts, func(s Statement) bool {
			_, ok := s.(*Class)
			return ok
		}, nil) {
			if !yield(s.(*Class)) {
				return
			}
		}
	}
}
