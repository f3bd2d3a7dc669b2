package mt940parser

import (
	"regexp"
	"strings"
	"unicode"
)

// ScoreConfig carries the tunable thresholds of the corporate-vs-personal
// name heuristic. The defaults are tuned to observed statement samples;
// keeping them configurable lets new name formats be accommodated without
// touching the scoring logic.
type ScoreConfig struct {
	// AllCapsMinWords is the minimum count of all-uppercase words for a
	// name to lean corporate.
	AllCapsMinWords int
	// PersonMaxWords is the maximum word count for a capitalized name to
	// lean personal.
	PersonMaxWords int
}

// DefaultScoreConfig returns the thresholds used when none are configured.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{AllCapsMinWords: 2, PersonMaxWords: 3}
}

var scoreConfig = DefaultScoreConfig()

// SetScoreConfig replaces the scoring thresholds.
func SetScoreConfig(cfg ScoreConfig) {
	if cfg.AllCapsMinWords < 1 || cfg.PersonMaxWords < 1 {
		return
	}
	scoreConfig = cfg
}

// scorePattern pairs a compiled pattern with its score delta. The table is
// data so new legal forms or titles can be added without new control flow.
type scorePattern struct {
	re    *regexp.Regexp
	delta int
}

var scorePatterns = []scorePattern{
	// Corporate legal-form suffixes and business words.
	{regexp.MustCompile(`(?i)\b(AG|SA|GmbH|S\.?à\.?r\.?l|SARL|BV|NV|Ltd|Limited|LLC|Inc\.?|PLC|SAS|S\.?p\.?A\.?|SpA|Co\.|Company|Bank|Versicherung|Insurance|Stiftung|Foundation|Services?|Holding)\b`), 2},
	// Personal titles.
	{regexp.MustCompile(`(?i)\b(Mr|Mrs|Ms|Miss|Herr|Frau|Dr|Prof)\b`), -2},
}

// NameScore rates a counterparty name: positive means corporate-leaning,
// negative person-leaning, zero no signal.
func NameScore(name string) int {
	if name == "" {
		return 0
	}
	for _, p := range scorePatterns {
		if p.re.MatchString(name) {
			return p.delta
		}
	}

	words := strings.Fields(name)

	allCaps := 0
	for _, w := range words {
		if len([]rune(w)) > 1 && w == strings.ToUpper(w) && strings.IndexFunc(w, unicode.IsLetter) >= 0 {
			allCaps++
		}
	}
	if allCaps >= scoreConfig.AllCapsMinWords {
		return 1
	}

	// Short runs of capitalized words look like a human name.
	if len(words) > 0 && len(words) <= scoreConfig.PersonMaxWords {
		capitalized := true
		for _, w := range words {
			r := []rune(w)
			if !unicode.IsUpper(r[0]) {
				capitalized = false
				break
			}
		}
		if capitalized {
			return -1
		}
	}

	return 0
}

var (
	ordpSlashRe = regexp.MustCompile(`(?i)ORDP//C/[^,]*,\s*([^/,]+)`)
	ordpPlainRe = regexp.MustCompile(`(?i)ORDP/[^,]*,\s*([^/,]+)`)
	benmRe      = regexp.MustCompile(`(?i)BENM/([^/,]+)`)
	nameSegRe   = regexp.MustCompile(`(?i)NAME/([^/]+)`)
	remiSegRe   = regexp.MustCompile(`(?i)REMI/([^/]+)`)
)

// ordpName extracts the originator: the token after the first comma in an
// ORDP segment, in either its ORDP//C/<code>,<Name> or ORDP/<code>,<Name>
// sub-form.
func ordpName(t string) string {
	m := ordpSlashRe.FindStringSubmatch(t)
	if m == nil {
		m = ordpPlainRe.FindStringSubmatch(t)
	}
	if m == nil {
		return ""
	}
	return cleanupName(m[1])
}

// benmName extracts the beneficiary: the token following BENM/ up to the
// next slash or comma.
func benmName(t string) string {
	m := benmRe.FindStringSubmatch(t)
	if m == nil {
		return ""
	}
	return cleanupName(m[1])
}

func cleanupName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " /-,")
}

// ExtractPayee derives a counterparty name from the structured-remittance
// text of a transaction.
//
// Debits prefer the beneficiary, unless the originator scores corporate and
// the beneficiary scores personal; a payment naming a person as nominal
// beneficiary but a company as originator usually means the company is the
// true counterparty. Credits prefer the originator. When neither segment is
// present, NAME/ and REMI/ segments and finally a slice of the raw text
// serve as fallbacks.
func ExtractPayee(remittance, direction string) string {
	if remittance == "" {
		return ""
	}
	t := strings.Join(strings.Fields(remittance), " ")

	ordp := ordpName(t)
	benm := benmName(t)

	if direction == debitMark {
		if benm != "" {
			if ordp != "" && NameScore(ordp) > 0 && NameScore(benm) < 0 {
				return ordp
			}
			return benm
		}
		if ordp != "" {
			return ordp
		}
	} else {
		if ordp != "" {
			return ordp
		}
		if benm != "" {
			return benm
		}
	}

	if m := nameSegRe.FindStringSubmatch(t); m != nil {
		return cleanupName(m[1])
	}
	if m := remiSegRe.FindStringSubmatch(t); m != nil {
		return truncate(cleanupName(m[1]), 80)
	}
	return truncate(t, 80)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
