package domain

// NodeKind identifica la variante de un nodo del payload.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindMapping
	KindString
	KindInteger
	KindList
)

func (k NodeKind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	default:
		return "other"
	}
}

// Node es un nodo del arbol de entrada. Solo el campo que corresponde a Kind tiene valor.
// Las listas son opacas: nunca se materializan sus hijos.
type Node struct {
	Kind   NodeKind
	Fields []Field
	Str    string
	Int    int64
}

// Field es un par nombre/valor dentro de un mapping, en orden de documento.
type Field struct {
	Name  string
	Value Node
}

// Map construye un mapping con los campos en el orden dado.
func Map(fields ...Field) Node {
	return Node{Kind: KindMapping, Fields: fields}
}

// F es un atajo para construir un Field.
func F(name string, value Node) Field {
	return Field{Name: name, Value: value}
}

func String(s string) Node {
	return Node{Kind: KindString, Str: s}
}

func Integer(n int64) Node {
	return Node{Kind: KindInteger, Int: n}
}

func List() Node {
	return Node{Kind: KindList}
}

func Other() Node {
	return Node{Kind: KindOther}
}
