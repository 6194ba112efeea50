package match

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Lexicon carries the language/domain word lists the scorer depends on:
// synonym clusters folded into a canonical term, domain keywords for the
// similarity bonus, and the negative phrases that keep "I don't know"
// answers out of the vault. It is data so a deployment can swap languages
// without touching the matching semantics.
type Lexicon struct {
	// Synonyms maps a canonical term to its variant words and phrases.
	Synonyms map[string][]string `json:"synonyms"`
	Keywords []string            `json:"keywords"`
	// NegativePhrases are screened case-insensitively against raw (not
	// normalized) generated text.
	NegativePhrases []string `json:"negative_phrases"`

	// folding rules with normalized variants, longest variant first
	rules []foldRule
	// normalized keywords for the similarity bonus
	normKeywords []string
}

type foldRule struct {
	from string
	to   string
}

// DefaultLexicon covers the Spanish "El Principito" course the academy
// ships with, plus the English variants learners mix in.
func DefaultLexicon() *Lexicon {
	lx := &Lexicon{
		Synonyms: map[string][]string{
			"principito": {"nino protagonista", "little prince", "petit prince", "protagonista"},
			"nino":       {"child", "kid", "little one", "chico", "pequeno", "crio"},
			"planeta":    {"asteroide", "asteroid", "planet", "mundo"},
			"rosa":       {"flor", "flower", "rose"},
			"zorro":      {"fox"},
			"aviador":    {"piloto", "pilot", "aviator", "narrador"},
			"cordero":    {"oveja", "sheep", "lamb"},
			"baobab":     {"baobabs"},
			"domesticar": {"amansar", "tame"},
		},
		Keywords: []string{
			"principito", "nino", "planeta", "rosa", "zorro", "aviador",
			"cordero", "baobab", "estrella", "serpiente", "domesticar",
			"viaje", "rey", "farolero", "geografo",
		},
		NegativePhrases: []string{
			"no tengo información",
			"no tengo informacion",
			"no encuentro",
			"no puedo encontrar",
			"no dispongo de",
			"no lo sé",
			"no lo se",
			"i don't have",
			"i do not have",
			"cannot find",
			"can't find",
			"no information",
		},
	}
	lx.compile()
	return lx
}

// LoadLexicon reads a lexicon override from a JSON file. Lists left empty
// in the file keep their defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	lx := &Lexicon{}
	if err := json.Unmarshal(data, lx); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	def := DefaultLexicon()
	if len(lx.Synonyms) == 0 {
		lx.Synonyms = def.Synonyms
	}
	if len(lx.Keywords) == 0 {
		lx.Keywords = def.Keywords
	}
	if len(lx.NegativePhrases) == 0 {
		lx.NegativePhrases = def.NegativePhrases
	}
	lx.compile()
	return lx, nil
}

func (lx *Lexicon) compile() {
	lx.rules = lx.rules[:0]
	for canonical, variants := range lx.Synonyms {
		to := Normalize(canonical)
		for _, v := range variants {
			from := Normalize(v)
			if from == "" || from == to {
				continue
			}
			// A variant embedded in its own replacement reappears after
			// every pass, so Fold would never stabilize. Drop the rule.
			if strings.Contains(" "+to+" ", " "+from+" ") {
				continue
			}
			lx.rules = append(lx.rules, foldRule{from: from, to: to})
		}
	}
	// Longest variant first so phrases fold before their component words.
	sort.Slice(lx.rules, func(i, j int) bool {
		if len(lx.rules[i].from) != len(lx.rules[j].from) {
			return len(lx.rules[i].from) > len(lx.rules[j].from)
		}
		return lx.rules[i].from < lx.rules[j].from
	})

	lx.normKeywords = lx.normKeywords[:0]
	for _, kw := range lx.Keywords {
		if k := Normalize(kw); k != "" {
			lx.normKeywords = append(lx.normKeywords, k)
		}
	}
}

// Fold rewrites every synonym variant in a normalized string to its
// canonical term. Word-boundary-safe: replacement happens on space-padded
// whole words only.
func (lx *Lexicon) Fold(normalized string) string {
	if normalized == "" {
		return normalized
	}

	s := " " + normalized + " "
	for _, r := range lx.rules {
		pat := " " + r.from + " "
		rep := " " + r.to + " "
		// Repeat until stable: adjacent occurrences share boundary spaces,
		// so a single ReplaceAll pass can miss every second hit.
		for {
			next := strings.ReplaceAll(s, pat, rep)
			if next == s {
				break
			}
			s = next
		}
	}
	return strings.TrimSpace(s)
}

// IsNegative reports whether generated text reads as an "I don't know"
// answer. Case-insensitive substring check over the raw text.
func (lx *Lexicon) IsNegative(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range lx.NegativePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
