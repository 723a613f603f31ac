package translate

import (
	"fmt"
	"strings"
)

type Language struct {
	Name string
	Code string
}

// Languages is the menu order; Hindi is listed first.
var Languages = []Language{
	{Name: "Hindi", Code: "hi"},
	{Name: "English", Code: "en"},
	{Name: "Spanish", Code: "es"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Italian", Code: "it"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "Russian", Code: "ru"},
	{Name: "Chinese", Code: "zh"},
}

// LookupLanguage accepts a code ("hi"), a name ("hindi", case-insensitive)
// or a 1-based menu number ("1").
func LookupLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for i, l := range Languages {
		if strings.EqualFold(s, l.Code) || strings.EqualFold(s, l.Name) || s == fmt.Sprint(i+1) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language: %q", s)
}
