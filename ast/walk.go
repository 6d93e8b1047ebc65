package ast

import "fmt"

// Visitor is called by [Walk] for every node. If the returned visitor w is not
// nil, Walk visits the children of the node with w, followed by a call of
// w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walk(v, n.Body)
	case *PackageDeclaration:
		Walk(v, n.Name)
		Walk(v, n.Object)
	case *ScriptSource:
		walkList(v, n.Body)
	case *DumpSource:
		Walk(v, n.ID)
		Walk(v, n.Parent)
		walkList(v, n.Features)
		walkList(v, n.Assignments)
		walkList(v, n.Scripts)
	case *FeatureAddition:
		Walk(v, n.ID)
	case *FeatureInitialization:
		Walk(v, n.ID)
		walk(v, n.Value)

	case *ObjectDeclaration:
		Walk(v, n.ID)
		if n.SuperObject != nil {
			Walk(v, n.SuperObject)
		}
		walkList(v, n.Body)
	case *FeatureDeclaration:
		Walk(v, n.ID)
		walk(v, n.Init)
	case *FunctionDeclaration:
		Walk(v, n.ID)
		walkList(v, n.Params)
		walkList(v, n.Body)
	case *Parameter:
		Walk(v, n.ID)
		walk(v, n.Init)
	case *ScriptDeclaration:
		Walk(v, n.ID)
		walkList(v, n.Body)

	case *ObjectName:
		walkList(v, n.Name)
	case *Identifier, *LegacyAlias, *Literal:
		// leaves

	case *EmptyStatement, *BreakStatement, *ContinueStatement:
		// leaves
	case *LabelStatement:
		Walk(v, n.ID)
	case *VariableDeclaration:
		walkList(v, n.Declarations)
	case *VariableDeclarator:
		Walk(v, n.ID)
		walk(v, n.Init)
	case *IfStatement:
		walk(v, n.Test)
		walkList(v, n.Consequent)
		walkList(v, n.OtherClauses)
		walkList(v, n.Alternate)
	case *ElseIfClause:
		walk(v, n.Test)
		walkList(v, n.Consequent)
	case *SwitchStatement:
		walk(v, n.Discriminant)
		walkList(v, n.Cases)
	case *SwitchCase:
		walkList(v, n.Tests)
		walkList(v, n.Consequent)
	case *WhileStatement:
		walk(v, n.Test)
		walkList(v, n.Body)
	case *RepeatStatement:
		walkList(v, n.Body)
		walk(v, n.Test)
	case *ForStatement:
		walk(v, n.Init)
		walk(v, n.Test)
		walk(v, n.Update)
		walkList(v, n.Body)
	case *ForEachStatement:
		Walk(v, n.Left)
		walk(v, n.Right)
		walkList(v, n.Body)
	case *StructuredForStatement:
		Walk(v, n.Variable)
		walk(v, n.Start)
		walk(v, n.End)
		walk(v, n.Step)
		walkList(v, n.Body)
	case *GotoStatement:
		Walk(v, n.Label)
	case *ReturnStatement:
		walk(v, n.Argument)
	case *BreakIfStatement:
		walk(v, n.Test)
	case *ContinueIfStatement:
		walk(v, n.Test)
	case *ExpressionStatement:
		walk(v, n.Expression)

	case *ConditionalExpression:
		walk(v, n.Test)
		walk(v, n.Consequent)
		walk(v, n.Alternate)
	case *BinaryExpression:
		walk(v, n.Left)
		walk(v, n.Right)
	case *UnaryExpression:
		walk(v, n.Argument)
	case *MemberExpression:
		walk(v, n.Object)
		walk(v, n.Property)
	case *IndexExpression:
		walk(v, n.Object)
		walk(v, n.Index)
	case *SliceExpression:
		walk(v, n.Object)
		walk(v, n.Start)
		walk(v, n.End)
	case *CallExpression:
		walk(v, n.Callee)
		walkList(v, n.Arguments)
	case *ThisExpression, *SuperExpression:
		// leaves
	case *ListExpression:
		walkList(v, n.Elements)
	case *ListComprehension:
		walk(v, n.Expression)
		Walk(v, n.Left)
		walk(v, n.Right)
		walk(v, n.Test)
	case *AtExpression:
		walk(v, n.Expression)
	case *AssocExpression:
		walkList(v, n.Properties)
	case *Property:
		walk(v, n.Key)
		walk(v, n.Value)
	case *ParenthesisExpression:
		walk(v, n.Expression)
	case *XlateExpression:
		Walk(v, n.Ospace)
		Walk(v, n.Name)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

// walk visits an optional child held in an interface field.
func walk[T Node](v Visitor, n T) {
	var node Node = n
	if node != nil {
		Walk(v, node)
	}
}

func walkList[T Node](v Visitor, list []T) {
	for _, n := range list {
		Walk(v, n)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at node in depth-first order, calling f for
// every node and then f(nil) after its children. Children are skipped when f
// returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
