package codegen

import "github.com/reso-lang/reso-sub002/internal/parsetree"

// AllBranchesReturn decides whether an if-statement returns on every
// path: it must have an else clause, and every branch block
// — the primary if, each elif, and the else — must contain a
// top-level return statement, or end its own all-branches-return
// nested if. This is a pure structural query over the parse tree: it
// never touches the Context and has no emission side effects, so
// lowerIfStmt can call it before deciding whether to allocate a merge
// block.
func AllBranchesReturn(ifStmt parsetree.Node) bool {
	elseClause := parsetree.ElseClause(ifStmt)
	if elseClause.IsNil() {
		return false
	}
	if !blockAlwaysReturns(parsetree.IfBody(ifStmt)) {
		return false
	}
	for _, e := range parsetree.ElifClauses(ifStmt) {
		if !blockAlwaysReturns(parsetree.ElifBody(e)) {
			return false
		}
	}
	return blockAlwaysReturns(parsetree.ElseBody(elseClause))
}

// blockAlwaysReturns reports whether a block is guaranteed to return
// before falling off its end: a top-level return statement anywhere
// in it suffices (everything after one is unreachable regardless), as
// does a nested if whose own branches all return.
func blockAlwaysReturns(block parsetree.Node) bool {
	for _, stmt := range parsetree.Statements(block) {
		switch stmt.Kind() {
		case parsetree.KindReturnStmt:
			return true
		case parsetree.KindIfStmt:
			if AllBranchesReturn(stmt) {
				return true
			}
		}
	}
	return false
}
