package lint

// Accessors that read a theme token with a literal fallback. A color literal is
// allowed only as an argument of one of these calls, for example:
//
//	getToken('color-accent', '#3366ff')
//
// Extra names can be added through the config file; they're merged with these.
var defaultAccessors = []string{
	"getToken",
	"readToken",
	"tokenOr",
	"cssVar",
}

// DefaultAccessors returns a copy of the built-in accessor names.
func DefaultAccessors() []string {
	out := make([]string, len(defaultAccessors))
	copy(out, defaultAccessors)
	return out
}
