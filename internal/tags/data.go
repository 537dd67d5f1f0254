package tags

// Class is the outcome of classifying a raw element name.
type Class int

const (
	ClassBlacklisted Class = iota
	ClassComponent
	ClassNativeVoid
	ClassNativeWhitespaceInsignificant
	ClassNativeOrdinary
	ClassUnrecognized
)

func (c Class) String() string {
	switch c {
	case ClassBlacklisted:
		return "blacklisted"
	case ClassComponent:
		return "component"
	case ClassNativeVoid:
		return "native-void"
	case ClassNativeWhitespaceInsignificant:
		return "native-whitespace-insignificant"
	case ClassNativeOrdinary:
		return "native-ordinary"
	case ClassUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Resolution is the classification of one element name.
// Definition is set only for ClassComponent.
type Resolution struct {
	Class      Class
	Definition any
}

// IsNative reports whether the element is built as a native element.
func (r Resolution) IsNative() bool {
	switch r.Class {
	case ClassNativeVoid, ClassNativeWhitespaceInsignificant, ClassNativeOrdinary, ClassUnrecognized:
		return true
	default:
		return false
	}
}

// SuppressesBlankText reports whether pure-whitespace text children are dropped.
func (r Resolution) SuppressesBlankText() bool {
	return r.Class == ClassNativeWhitespaceInsignificant
}

// Lookup resolves registered component names. Keys are exact and case-sensitive.
type Lookup interface {
	Lookup(name string) (any, bool)
}

// TagBlacklist answers tag-name blacklist membership.
type TagBlacklist interface {
	IsTagBlacklisted(name string) bool
}
