package rules

import "github.com/expr-lang/expr/vm"

// Rule is a condition to score adjustment pair. When the condition holds for a
// candidate, Delta is added to its score with Reason as the rationale.
// Category + Exclusive keep overlapping rules from stacking on one candidate.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for serialization)
	Delta        float64     // score adjustment when the rule fires
	Reason       string      // rationale entry recorded on the candidate
	program      *vm.Program // compiled bytecode
}
