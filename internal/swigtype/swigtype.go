// Package swigtype implements the opaque type-string encoding grammar the
// instantiation core treats as a prior-art compact string representation of
// a C++ type (§4.A). It is consumed purely through the operations listed
// below; nothing outside this package inspects the encoding directly.
//
// Grammar (prefix fragments, longest-match, concatenated left to right, then
// a terminal base name, optionally followed by a template-argument tail):
//
//	q(const).          qualifier
//	p.                 pointer
//	r.                 reference
//	a(4).              array of size 4
//	f(int,int).         function taking (int,int)
//	v.                 variadic pack marker
//	Name<(int,double)>  base name with template-argument tail
package swigtype

import (
	"regexp"
	"strings"
)

// T is an encoded type string, e.g. "r.q(const).int" or "p.Foo<(int)>".
type T string

var fragmentRe = regexp.MustCompile(`^(q\([^)]*\)\.|p\.|r\.|a\([^)]*\)\.|f\([^)]*\)\.|v\.)`)

// splitFragment returns the leading recognized fragment (with its trailing
// '.') and the remainder, or ("", s) if s starts with none of them.
func splitFragment(s string) (frag, rest string) {
	loc := fragmentRe.FindStringIndex(s)
	if loc == nil {
		return "", s
	}
	return s[:loc[1]], s[loc[1]:]
}

// Last returns the single leading fragment of t (the outermost type
// constructor), or "" if t has no recognized prefix fragment.
func (t T) Last() string {
	frag, _ := splitFragment(string(t))
	return frag
}

// Prefix returns every prefix fragment of t concatenated together — i.e.
// everything except the base name and its template tail.
func (t T) Prefix() string {
	s := string(t)
	var out strings.Builder
	for {
		frag, rest := splitFragment(s)
		if frag == "" {
			return out.String()
		}
		out.WriteString(frag)
		s = rest
	}
}

// Base strips every recognized prefix fragment and returns what remains
// (the base name, including any template-argument tail).
func (t T) Base() T {
	s := string(t)
	for {
		frag, rest := splitFragment(s)
		if frag == "" {
			return T(s)
		}
		s = rest
	}
}

// IsVariadic reports whether t carries the variadic pack marker as its
// outermost fragment.
func (t T) IsVariadic() bool {
	return strings.HasPrefix(string(t), "v.")
}

// DelVariadic removes a single leading variadic marker from t, if present.
func (t T) DelVariadic() T {
	return T(strings.TrimPrefix(string(t), "v."))
}

// IsQualifier reports whether t's outermost fragment is a cv-qualifier.
func (t T) IsQualifier() bool {
	return strings.HasPrefix(string(t), "q(")
}

// IsArray reports whether t's outermost fragment is an array dimension.
func (t T) IsArray() bool {
	return strings.HasPrefix(string(t), "a(")
}

// IsFunction reports whether t's outermost fragment is a function type.
func (t T) IsFunction() bool {
	return strings.HasPrefix(string(t), "f(")
}

// Fragments returns t's ordered prefix fragments (qualifier/pointer/
// reference/array/function/variadic), each including its trailing '.'.
// Used by the post-processor (§4.I) to separate qualifier/array
// fragments from the rest of a type string.
func (t T) Fragments() []string {
	var frags []string
	s := string(t)
	for {
		frag, rest := splitFragment(s)
		if frag == "" {
			return frags
		}
		frags = append(frags, frag)
		s = rest
	}
}

var templateTailRe = regexp.MustCompile(`<\([^>]*\)>$`)

// IsTemplate reports whether t's base name carries a template-argument
// tail, i.e. `Name<(args)>`.
func (t T) IsTemplate() bool {
	return templateTailRe.MatchString(string(t))
}

// TemplatePrefix returns the base name with its template-argument tail (if
// any) removed, e.g. "Foo<(int)>" -> "Foo".
func (t T) TemplatePrefix() T {
	return T(templateTailRe.ReplaceAllString(string(t), ""))
}

// AddTemplate appends an encoded template-argument tail built from args to
// t's base name, e.g. AddTemplate("Foo", []T{"int","double"}) -> "Foo<(int,double)>".
func AddTemplate(base T, args []T) T {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = string(a)
	}
	return T(string(base) + "<(" + strings.Join(strs, ",") + ")>")
}

// Str returns the display ("pretty") form of t. The opaque grammar in this
// package is already close enough to its display form that Str is the
// identity; kept as a named operation because the spec names it separately
// from the storage encoding (§4.H step 4 calls `type_str(d)` to compute the
// substitution display string, distinct from the stored encoding `d`).
func (t T) Str() string {
	return string(t)
}

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// identifierReplace substitutes whole-identifier occurrences of name with
// repl inside s. "Whole identifier" means not preceded or followed by an
// identifier character — this prevents replacing "T" inside "Tail".
func identifierReplace(s, name, repl string) string {
	if name == "" {
		return s
	}
	return identRe.ReplaceAllStringFunc(s, func(m string) string {
		if m == name {
			return repl
		}
		return m
	})
}

// IdentifierReplace is the exported whole-identifier replace used directly
// by patchlist/cpatchlist substitution in internal/expand (§4.H): replace
// every whole-identifier occurrence of name with repl inside s.
func IdentifierReplace(s, name, repl string) string {
	return identifierReplace(s, name, repl)
}

// StringizeReplace implements the `#NAME` -> `"value"` stringize
// substitution used on cpatchlist entries (§3, §4.H): every occurrence of
// "#name" (name as a whole identifier immediately after '#') becomes a
// quoted valuestr, before the plain identifier replace is applied.
func StringizeReplace(s, name, valuestr string) string {
	if name == "" {
		return s
	}
	re := regexp.MustCompile(`#` + regexp.QuoteMeta(name) + `\b`)
	return re.ReplaceAllLiteralString(s, `"`+valuestr+`"`)
}

// TypenameReplace performs an in-place identifier replace of name -> repl
// inside *buf. It mutates its first argument, per §4.A's note that
// typename_replace mutates in place.
func TypenameReplace(buf *T, name string, repl T) {
	*buf = T(identifierReplace(string(*buf), name, string(repl)))
}

// VariadicReplace protects against any remaining `v.p.X`-shaped fragment in
// *buf by substituting packName's placeholder with the joined actuals, then
// stripping the variadic marker. It mutates its first argument.
func VariadicReplace(buf *T, packName string, actuals []T) {
	s := string(*buf)
	if !strings.Contains(s, "v.") {
		return
	}
	strs := make([]string, len(actuals))
	for i, a := range actuals {
		strs[i] = string(a)
	}
	joined := strings.Join(strs, ",")
	s = strings.ReplaceAll(s, "v."+packName, joined)
	s = strings.ReplaceAll(s, "v.", "")
	*buf = T(s)
}

// DelVariadicReplace replaces a whole identifier occurrence of name with
// repl inside s. It behaves exactly like IdentifierReplace; the pack
// expander in internal/expand calls IdentifierReplace, not this function.
func DelVariadicReplace(s, name, repl string) string {
	return identifierReplace(s, name, repl)
}
