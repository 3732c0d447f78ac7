package rdf

import "strings"

// parseState identifies what the parser is reading at one nesting level.
type parseState uint8

const (
	stateNone parseState = iota
	stateSubject
	statePredicate
	stateObject
	stateLiteral
	numStates
)

func (s parseState) String() string {
	switch s {
	case stateNone:
		return "none"
	case stateSubject:
		return "subject"
	case statePredicate:
		return "predicate"
	case stateObject:
		return "object"
	case stateLiteral:
		return "literal"
	}
	return "invalid"
}

// frame is one entry of the parser's state stack. Each open element owns
// exactly one frame with its own text buffer, so sibling elements never
// share accumulation state.
type frame struct {
	state parseState

	// predicate recorded when this frame was opened (predicate and literal
	// frames).
	predicate IRI
	// datatype for literal frames.
	datatype string
	// lang is the language tag in scope for this frame.
	lang string
	// buf accumulates character data for predicate and literal frames.
	buf strings.Builder
	// literalDepth counts open elements inside an XML literal capture.
	// While it is non-zero, element events adjust the buffer and this
	// counter instead of the frame stack.
	literalDepth int

	// subjectPushed records that this frame pushed the subject stack and
	// must pop it when it ends.
	subjectPushed bool
	// satisfied records that the object of this predicate frame was already
	// emitted through a shorthand; the element end pops without emitting
	// again.
	satisfied bool
	// dropped records that this frame's statement was abandoned after a
	// data error (unresolved prefix); nothing is emitted for it.
	dropped bool
}

// frameStack is the parser's state stack. It is empty only before the
// document starts and after it ends.
type frameStack struct {
	frames []*frame
}

func (s *frameStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

// pop removes and returns the top frame, or nil on underflow.
func (s *frameStack) pop() *frame {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

// peek returns the top frame without removing it, or nil when empty.
func (s *frameStack) peek() *frame {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}
	return nil
}

func (s *frameStack) len() int { return len(s.frames) }

// subjectStack holds one reference per currently-open resource node. It is
// non-empty whenever the state stack top is predicate or deeper.
type subjectStack struct {
	subjects []Term
}

func (s *subjectStack) push(t Term) {
	s.subjects = append(s.subjects, t)
}

// pop removes and returns the top subject, or nil on underflow.
func (s *subjectStack) pop() Term {
	n := len(s.subjects)
	if n == 0 {
		return nil
	}
	t := s.subjects[n-1]
	s.subjects = s.subjects[:n-1]
	return t
}

// peek returns the top subject, or nil when empty.
func (s *subjectStack) peek() Term {
	if n := len(s.subjects); n > 0 {
		return s.subjects[n-1]
	}
	return nil
}

func (s *subjectStack) len() int { return len(s.subjects) }
