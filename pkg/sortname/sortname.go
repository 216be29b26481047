// Package sortname generates sort keys for media display names following
// library-catalog conventions, so "The Beatles" files under B and
// "Ludwig van Beethoven" under Beethoven.
package sortname

import (
	"strings"
)

// TitleArticles are articles stripped from the beginning of titles and moved
// to the end (e.g. "The Dark Side of the Moon" -> "Dark Side of the Moon, The").
var TitleArticles = []string{
	"The",
	"A",
	"An",
}

// GenerationalSuffixes are preserved in the sort name since they distinguish
// different people (e.g. "Hank Williams Jr.").
var GenerationalSuffixes = []string{
	"Jr.",
	"Jr",
	"Sr.",
	"Sr",
	"Junior",
	"Senior",
	"I",
	"II",
	"III",
	"IV",
	"V",
}

// Honorifics are titles stripped from the front of a person's name.
var Honorifics = []string{
	"Dr.",
	"Dr",
	"Mr.",
	"Mr",
	"Mrs.",
	"Mrs",
	"Ms.",
	"Ms",
	"Rev.",
	"Rev",
	"Sir",
	"Dame",
	"Lord",
	"Lady",
}

// Particles are name particles moved to the end with the given name.
// Example: "Ludwig van Beethoven" -> "Beethoven, Ludwig van".
var Particles = []string{
	"van",
	"von",
	"de",
	"da",
	"di",
	"du",
	"del",
	"della",
	"la",
	"le",
	"el",
	"al",
	"bin",
	"ibn",
}

// ForTitle generates a sort title from a display title. Leading articles are
// moved to the end.
// Examples:
//   - "The Wall" -> "Wall, The"
//   - "A Love Supreme" -> "Love Supreme, A"
//   - "Abbey Road" -> "Abbey Road" (no change)
func ForTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	for _, article := range TitleArticles {
		prefix := article + " "
		if strings.EqualFold(title[:min(len(prefix), len(title))], prefix) && len(title) > len(prefix) {
			actualArticle := title[:len(article)]
			rest := strings.TrimSpace(title[len(prefix):])
			if rest != "" {
				return rest + ", " + actualArticle
			}
		}
	}

	return title
}

// ForPerson generates a sort name from a person's display name, converted to
// "Last, First Middle" form.
// Examples:
//   - "Miles Davis" -> "Davis, Miles"
//   - "Hank Williams Jr." -> "Williams, Hank, Jr."
//   - "Sir Elton John" -> "John, Elton"
//   - "Ludwig van Beethoven" -> "Beethoven, Ludwig van"
func ForPerson(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}

	if len(parts) == 1 {
		return name
	}

	for len(parts) > 1 && isHonorific(parts[0]) {
		parts = parts[1:]
	}

	if len(parts) == 1 {
		return parts[0]
	}

	var generationalSuffixes []string
	for len(parts) > 1 {
		last := parts[len(parts)-1]
		if !isGenerationalSuffix(last) {
			break
		}
		generationalSuffixes = append([]string{last}, generationalSuffixes...)
		parts = parts[:len(parts)-1]
	}

	if len(parts) == 1 {
		if len(generationalSuffixes) > 0 {
			return parts[0] + ", " + strings.Join(generationalSuffixes, ", ")
		}
		return parts[0]
	}

	surname := parts[len(parts)-1]
	givenParts := parts[:len(parts)-1]

	// Particles travel with the given name: the surname "Beethoven" sorts
	// first, then "Ludwig van".
	var particleParts []string
	for len(givenParts) > 0 {
		last := givenParts[len(givenParts)-1]
		if !isParticle(last) {
			break
		}
		particleParts = append([]string{last}, particleParts...)
		givenParts = givenParts[:len(givenParts)-1]
	}

	var result strings.Builder
	result.WriteString(surname)

	if len(givenParts) > 0 || len(particleParts) > 0 {
		result.WriteString(", ")
		if len(givenParts) > 0 {
			result.WriteString(strings.Join(givenParts, " "))
		}
		if len(particleParts) > 0 {
			if len(givenParts) > 0 {
				result.WriteString(" ")
			}
			result.WriteString(strings.Join(particleParts, " "))
		}
	}

	if len(generationalSuffixes) > 0 {
		result.WriteString(", ")
		result.WriteString(strings.Join(generationalSuffixes, ", "))
	}

	return result.String()
}

func isHonorific(word string) bool {
	for _, h := range Honorifics {
		if strings.EqualFold(word, h) {
			return true
		}
	}
	return false
}

func isGenerationalSuffix(word string) bool {
	// Case-sensitive: "Hank Williams IV" has a suffix, "Ludwig IV gmbh" does
	// not become one by lowercasing.
	for _, s := range GenerationalSuffixes {
		if word == s || word == s+"," {
			return true
		}
	}
	return false
}

func isParticle(word string) bool {
	for _, p := range Particles {
		if strings.EqualFold(word, p) {
			return true
		}
	}
	return false
}
