package seasharp

type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeBool
)

var typeNames = map[string]Type{
	"int":   TypeInt,
	"float": TypeFloat,
	"bool":  TypeBool,
}

func ParseType(name string) (Type, bool) {
	t, ok := typeNames[name]
	return t, ok
}

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	default:
		return "~invalid"
	}
}

// Accepts reports whether a value of type v may be stored in a variable
// declared as t. Only int and bool variables are strict, a float variable
// takes any value.
func (t Type) Accepts(v Type) bool {
	return t == v || t == TypeFloat
}
