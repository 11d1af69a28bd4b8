package scoring

// Class is the render classification of one reference character.
type Class int

const (
	// Untyped marks positions beyond the current input.
	Untyped Class = iota
	// Correct marks a matching non-space character.
	Correct
	// CorrectSpace marks a matching space.
	CorrectSpace
	// Incorrect marks a mismatched non-space character.
	Incorrect
	// IncorrectSpace marks a reference space that was typed as something else.
	IncorrectSpace
)

func (c Class) String() string {
	switch c {
	case Untyped:
		return "untyped"
	case Correct:
		return "correct"
	case CorrectSpace:
		return "correct-space"
	case Incorrect:
		return "incorrect"
	case IncorrectSpace:
		return "incorrect-space"
	default:
		return "unknown"
	}
}

// Typed reports whether the class belongs to a typed position.
func (c Class) Typed() bool {
	return c != Untyped
}

// Char is a reference rune with its classification.
type Char struct {
	Rune  rune
	Class Class
}

// Classify returns one entry per rune of reference describing how it should
// be rendered against input.
func Classify(reference, input string) []Char {
	ref := []rune(reference)
	in := []rune(input)
	out := make([]Char, len(ref))
	for i, r := range ref {
		out[i] = Char{Rune: r, Class: classifyAt(r, in, i)}
	}
	return out
}

func classifyAt(r rune, input []rune, i int) Class {
	if i >= len(input) {
		return Untyped
	}
	space := r == ' '
	if input[i] == r {
		if space {
			return CorrectSpace
		}
		return Correct
	}
	if space {
		return IncorrectSpace
	}
	return Incorrect
}
