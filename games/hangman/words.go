package hangman

import (
	"fmt"
	"strings"
	"unicode"

	lua "github.com/yuin/gopher-lua"
)

var classicWords = []string{
	"elephant", "giraffe", "kangaroo", "penguin", "coconut", "laptop",
	"bicycle", "chocolate", "mountain", "river", "jungle", "volcano",
	"diamond", "unicorn", "wizard", "robot",
}

var extraWords = []string{
	"astronaut", "butterfly", "cactus", "dinosaur", "dolphin", "dragon",
	"galaxy", "guitar", "hamburger", "island", "jellyfish", "keyboard",
	"lantern", "lighthouse", "octopus", "pyramid", "rainbow", "sandwich",
	"skeleton", "telescope", "tornado", "umbrella", "vampire", "waterfall",
	"penguin", "volcano", "zebra",
}

// ClassicWords returns the original word list.
func ClassicWords() []string {
	out := make([]string, len(classicWords))
	copy(out, classicWords)
	return out
}

// ExtendedWords returns the classic words plus the extra list, without duplicates.
func ExtendedWords() []string {
	return NormalizeWords(append(ClassicWords(), extraWords...))
}

// NormalizeWords lowercases words and drops empty entries, entries containing
// anything other than letters, and duplicates. Order is preserved.
func NormalizeWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] || !isWord(w) {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func isWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// LoadWordScript runs a Lua word pack and returns the words for variant.
//
// The script must return either an array of words, used for every variant,
// or a table keyed by variant name whose values are arrays of words.
func LoadWordScript(path, variant string) ([]string, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("failed to run word script: %w", err)
	}
	return wordsFromStack(L, variant)
}

// ParseWordScript is LoadWordScript for an in-memory script.
func ParseWordScript(source, variant string) ([]string, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("failed to run word script: %w", err)
	}
	return wordsFromStack(L, variant)
}

func wordsFromStack(L *lua.LState, variant string) ([]string, error) {
	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("word script must return a table")
	}

	list := tbl
	if tbl.Len() == 0 {
		sub, ok := tbl.RawGetString(variant).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("word script has no list for %q", variant)
		}
		list = sub
	}

	var raw []string
	list.ForEach(func(_, value lua.LValue) {
		if s, ok := value.(lua.LString); ok {
			raw = append(raw, string(s))
		}
	})

	words := NormalizeWords(raw)
	if len(words) == 0 {
		return nil, fmt.Errorf("word script has no usable words for %q", variant)
	}
	return words, nil
}
