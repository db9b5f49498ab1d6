package rewriter

import "fmt"

// InternalError signals a defect in the desugaring-rule definitions
// themselves: a generation-only construct on the match side, an
// unregistered metafunction or bijection name, a duplicate ellipsis label.
// It aborts the current desugaring operation and is never retried.
type InternalError struct {
	Construct string // rendering of the offending construct
	Op        string // operator of the rule being applied, when known
	CaseIndex int    // index of the case within its alternation, -1 when unknown
	Message   string
}

func (e *InternalError) Error() string {
	msg := fmt.Sprintf("internal error in rewrite rules: %s", e.Message)
	if e.Construct != "" {
		msg += fmt.Sprintf(" (in %s)", e.Construct)
	}
	if e.Op != "" {
		msg += fmt.Sprintf(" [rule %q case %d]", e.Op, e.CaseIndex)
	}
	return msg
}

// DesugarError is a user-facing desugaring failure: the rhs references a
// pattern variable the lhs never bound, or ellipsis repetition counts
// disagree across a shared label. It is reported against the program being
// compiled, with enough rule context to debug the rule set.
type DesugarError struct {
	Op        string // operator of the rule being applied, when known
	CaseIndex int    // index of the case within its alternation, -1 when unknown
	Message   string
}

func (e *DesugarError) Error() string {
	msg := fmt.Sprintf("desugaring failed: %s", e.Message)
	if e.Op != "" {
		msg += fmt.Sprintf(" [rule %q case %d]", e.Op, e.CaseIndex)
	}
	return msg
}

func internalErrf(construct, format string, args ...any) error {
	return &InternalError{Construct: construct, CaseIndex: -1, Message: fmt.Sprintf(format, args...)}
}

func desugarErrf(format string, args ...any) error {
	return &DesugarError{CaseIndex: -1, Message: fmt.Sprintf(format, args...)}
}

// attachRuleContext records the rule operator and case index on an engine
// error that does not carry them yet.
func attachRuleContext(err error, op string, caseIndex int) error {
	switch e := err.(type) {
	case *DesugarError:
		if e.Op == "" {
			e.Op = op
			e.CaseIndex = caseIndex
		}
	case *InternalError:
		if e.Op == "" {
			e.Op = op
			e.CaseIndex = caseIndex
		}
	}
	return err
}
