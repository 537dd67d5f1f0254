/*
Responsibilities
- Classify a raw element name into exactly one Class
- Decide the children and whitespace policy of the built node

Order of precedence
 1. Blacklisted by the sanitizer
 2. Exact registry key
 3. Void table (case-insensitive)
 4. Whitespace-insignificant table (case-insensitive)
 5. Unknown names are Unrecognized
 6. Everything else is NativeOrdinary

A registered name always gets ordinary children handling, even when it
coincides with a void or whitespace-insignificant native tag.
*/
package tags

func Classify(name string, registry Lookup, blacklist TagBlacklist) Resolution {
	if blacklist != nil && blacklist.IsTagBlacklisted(name) {
		return Resolution{Class: ClassBlacklisted}
	}
	if registry != nil {
		if def, ok := registry.Lookup(name); ok {
			return Resolution{Class: ClassComponent, Definition: def}
		}
	}
	if IsVoid(name) {
		return Resolution{Class: ClassNativeVoid}
	}
	if IsWhitespaceInsignificant(name) {
		return Resolution{Class: ClassNativeWhitespaceInsignificant}
	}
	if !IsNative(name) && !IsCustomElementName(name) {
		return Resolution{Class: ClassUnrecognized}
	}
	return Resolution{Class: ClassNativeOrdinary}
}
