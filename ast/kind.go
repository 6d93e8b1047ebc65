package ast

// NodeKind is the variant tag of a node.
type NodeKind int

// Node kinds, one per concrete node type.
const (
	InvalidNode NodeKind = iota

	ProgramNode
	PackageDeclarationNode
	ScriptSourceNode
	DumpSourceNode
	FeatureAdditionNode
	FeatureInitializationNode

	ObjectDeclarationNode
	FeatureDeclarationNode
	FunctionDeclarationNode
	ParameterNode
	ScriptDeclarationNode

	ObjectNameNode
	IdentifierNode
	LegacyAliasNode
	LiteralNode

	EmptyStatementNode
	LabelStatementNode
	VariableDeclarationNode
	VariableDeclaratorNode
	IfStatementNode
	ElseIfClauseNode
	SwitchStatementNode
	SwitchCaseNode
	WhileStatementNode
	RepeatStatementNode
	ForStatementNode
	ForEachStatementNode
	StructuredForStatementNode
	GotoStatementNode
	ReturnStatementNode
	BreakStatementNode
	ContinueStatementNode
	BreakIfStatementNode
	ContinueIfStatementNode
	ExpressionStatementNode

	ConditionalExpressionNode
	BinaryExpressionNode
	UnaryExpressionNode
	MemberExpressionNode
	IndexExpressionNode
	SliceExpressionNode
	CallExpressionNode
	ThisExpressionNode
	SuperExpressionNode
	ListExpressionNode
	ListComprehensionNode
	AtExpressionNode
	AssocExpressionNode
	PropertyNode
	ParenthesisExpressionNode
	XlateExpressionNode
)

var kindNames = [...]string{
	InvalidNode:                "Invalid",
	ProgramNode:                "Program",
	PackageDeclarationNode:     "PackageDeclaration",
	ScriptSourceNode:           "ScriptSource",
	DumpSourceNode:             "DumpSource",
	FeatureAdditionNode:        "FeatureAddition",
	FeatureInitializationNode:  "FeatureInitialization",
	ObjectDeclarationNode:      "ObjectDeclaration",
	FeatureDeclarationNode:     "FeatureDeclaration",
	FunctionDeclarationNode:    "FunctionDeclaration",
	ParameterNode:              "Parameter",
	ScriptDeclarationNode:      "ScriptDeclaration",
	ObjectNameNode:             "ObjectName",
	IdentifierNode:             "Identifier",
	LegacyAliasNode:            "LegacyAlias",
	LiteralNode:                "Literal",
	EmptyStatementNode:         "EmptyStatement",
	LabelStatementNode:         "LabelStatement",
	VariableDeclarationNode:    "VariableDeclaration",
	VariableDeclaratorNode:     "VariableDeclarator",
	IfStatementNode:            "IfStatement",
	ElseIfClauseNode:           "ElseIfClause",
	SwitchStatementNode:        "SwitchStatement",
	SwitchCaseNode:             "SwitchCase",
	WhileStatementNode:         "WhileStatement",
	RepeatStatementNode:        "RepeatStatement",
	ForStatementNode:           "ForStatement",
	ForEachStatementNode:       "ForEachStatement",
	StructuredForStatementNode: "StructuredForStatement",
	GotoStatementNode:          "GotoStatement",
	ReturnStatementNode:        "ReturnStatement",
	BreakStatementNode:         "BreakStatement",
	ContinueStatementNode:      "ContinueStatement",
	BreakIfStatementNode:       "BreakIfStatement",
	ContinueIfStatementNode:    "ContinueIfStatement",
	ExpressionStatementNode:    "ExpressionStatement",
	ConditionalExpressionNode:  "ConditionalExpression",
	BinaryExpressionNode:       "BinaryExpression",
	UnaryExpressionNode:        "UnaryExpression",
	MemberExpressionNode:       "MemberExpression",
	IndexExpressionNode:        "IndexExpression",
	SliceExpressionNode:        "SliceExpression",
	CallExpressionNode:         "CallExpression",
	ThisExpressionNode:         "ThisExpression",
	SuperExpressionNode:        "SuperExpression",
	ListExpressionNode:         "ListExpression",
	ListComprehensionNode:      "ListComprehension",
	AtExpressionNode:           "AtExpression",
	AssocExpressionNode:        "AssocExpression",
	PropertyNode:               "Property",
	ParenthesisExpressionNode:  "ParenthesisExpression",
	XlateExpressionNode:        "XlateExpression",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[InvalidNode]
}
