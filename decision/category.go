package decision

import "strings"

// Category is what an offered action does, parsed once from its display text.
type Category string

const (
	Deploy   Category = "deploy"
	Battle   Category = "battle"
	Move     Category = "move"
	Draw     Category = "draw"
	Activate Category = "activate"
	Play     Category = "play"
	Pass     Category = "pass"
	Unknown  Category = "unknown"
)

var passWords = map[string]bool{
	"pass":    true,
	"done":    true,
	"cancel":  true,
	"decline": true,
	"skip":    true,
	"no":      true,
}

var keywordCategories = []struct {
	words    []string
	category Category
}{
	{[]string{"deploy"}, Deploy},
	{[]string{"battle", "initiate"}, Battle},
	{[]string{"move", "shuttle", "transit", "relocate", "embark", "disembark"}, Move},
	{[]string{"draw"}, Draw},
	{[]string{"activate"}, Activate},
	{[]string{"play"}, Play},
}

// Classify maps action text to its category. A leading decline word wins
// over any keyword later in the text ("Cancel deploy" is a pass).
func Classify(text string) Category {
	words := tokens(text)
	if len(words) == 0 {
		return Unknown
	}
	if passWords[words[0]] {
		return Pass
	}
	for _, kc := range keywordCategories {
		for _, w := range words {
			for _, k := range kc.words {
				if w == k {
					return kc.category
				}
			}
		}
	}
	return Unknown
}

// tokens lowercases text and splits it into words, dropping punctuation.
func tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
}
