package font

import "strings"

// Case transforms applied to title text. "source" leaves the title exactly
// as retrieved; "blank" suppresses it entirely.
var caseTransforms = map[string]func(string) string{
	"upper":  strings.ToUpper,
	"lower":  strings.ToLower,
	"title":  titleCase,
	"source": func(s string) string { return s },
	"blank":  func(string) string { return "" },
}

// KnownCase reports whether name is a recognized case transform.
func KnownCase(name string) bool {
	_, ok := caseTransforms[name]
	return ok
}

// CaseNames returns the recognized case transform names.
func CaseNames() []string {
	names := make([]string, 0, len(caseTransforms))
	for name := range caseTransforms {
		names = append(names, name)
	}
	return names
}

func applyCase(name, s string) string {
	if fn, ok := caseTransforms[name]; ok {
		return fn(s)
	}
	return s
}

// titleCase upper-cases the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
