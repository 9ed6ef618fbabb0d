package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersOnly = regexp.MustCompile(`[^\p{L}]+`)
	reUnderscores     = regexp.MustCompile(`_+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseUnderscores(s string) string {
	s = reUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeCity strips everything but letters so "Tel Aviv" and "tel-aviv"
// index identically.
func NormalizeCity(city string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersOnly.ReplaceAllString(s, "") },
	}
	return p.Apply(city)
}

// NormalizeSpecialization lowercases and joins words with underscores,
// "Exotic Animals" becomes "exotic_animals".
func NormalizeSpecialization(spec string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersOnly.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(spec)
}
