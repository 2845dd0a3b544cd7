// Package compile implements a linear byte encoding of chipy/ast trees: a
// self-describing, non-positional stream that the evaluator in package
// chipy walks with a paired execute/skip cursor.
package compile

// NodeType is the one-byte tag that precedes every encoded node. Its
// ordering has no significance beyond giving each tag a stable ordinal,
// since the encoding carries no node-length header and a decoder must
// already know how to walk every tag's payload.
type NodeType byte

const (
	StatementList NodeType = iota
	Name
	Assign
	Return
	String
	Compare
	Dictionary
	Integer
	If
	IfElse
	Call
	Attribute
	UnaryOp
	BinaryOp
	BoolOp
	List
	Tuple
	Subscript
	Index
	ForLoop
	WhileLoop
	AugmentedAssign
	Continue
	Break
	Import
	ImportFrom
	Alias
)

func (t NodeType) String() string {
	switch t {
	case StatementList:
		return "StatementList"
	case Name:
		return "Name"
	case Assign:
		return "Assign"
	case Return:
		return "Return"
	case String:
		return "String"
	case Compare:
		return "Compare"
	case Dictionary:
		return "Dictionary"
	case Integer:
		return "Integer"
	case If:
		return "If"
	case IfElse:
		return "IfElse"
	case Call:
		return "Call"
	case Attribute:
		return "Attribute"
	case UnaryOp:
		return "UnaryOp"
	case BinaryOp:
		return "BinaryOp"
	case BoolOp:
		return "BoolOp"
	case List:
		return "List"
	case Tuple:
		return "Tuple"
	case Subscript:
		return "Subscript"
	case Index:
		return "Index"
	case ForLoop:
		return "ForLoop"
	case WhileLoop:
		return "WhileLoop"
	case AugmentedAssign:
		return "AugmentedAssign"
	case Continue:
		return "Continue"
	case Break:
		return "Break"
	case Import:
		return "Import"
	case ImportFrom:
		return "ImportFrom"
	case Alias:
		return "Alias"
	default:
		return "NodeType(?)"
	}
}
