package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// GenerateSlug: "Crème brûlée à l'ancienne" → "creme-brulee-a-l-ancienne"
func GenerateSlug(input string) string {
	// Step 1: Ligatures + diacritics → ASCII
	ascii := RemoveDiacritics(input)

	// Step 2: Lowercase
	lower := strings.ToLower(ascii)

	// Step 3: Spaces, apostrophes and separators become hyphens
	hyphenated := strings.NewReplacer(" ", "-", "'", "-", "’", "-", "_", "-", "/", "-").Replace(lower)

	// Step 4: Keep only a-z, 0-9, hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")

	// Step 5: Collapse consecutive hyphens
	normalized := slugDashes.ReplaceAllString(cleaned, "-")

	// Step 6: Trim leading/trailing hyphens
	return strings.Trim(normalized, "-")
}

var ligatures = strings.NewReplacer("œ", "oe", "Œ", "OE", "æ", "ae", "Æ", "AE", "ß", "ss")

var diacritics = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a', 'å': 'a',
	'ç': 'c',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i', 'í': 'i', 'ì': 'i',
	'ô': 'o', 'ö': 'o', 'ó': 'o', 'ò': 'o', 'õ': 'o', 'ø': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u', 'ú': 'u',
	'ÿ': 'y', 'ý': 'y',
	'ñ': 'n',

	'À': 'A', 'Â': 'A', 'Ä': 'A', 'Á': 'A', 'Ã': 'A', 'Å': 'A',
	'Ç': 'C',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'Î': 'I', 'Ï': 'I', 'Í': 'I', 'Ì': 'I',
	'Ô': 'O', 'Ö': 'O', 'Ó': 'O', 'Ò': 'O', 'Õ': 'O', 'Ø': 'O',
	'Ù': 'U', 'Û': 'U', 'Ü': 'U', 'Ú': 'U',
	'Ÿ': 'Y', 'Ý': 'Y',
	'Ñ': 'N',
}

// RemoveDiacritics folds accented Latin letters and ligatures to ASCII.
func RemoveDiacritics(input string) string {
	input = ligatures.Replace(input)

	result := make([]rune, 0, len(input))
	for _, r := range input {
		if replacement, ok := diacritics[r]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, r)
		}
	}

	return string(result)
}
