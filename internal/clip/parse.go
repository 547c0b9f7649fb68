package clip

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Legacy clip name parsing & canonical formatting.
//
// A legacy clip name joins the player's first and last name with an
// underscore, followed by a category token and a clip index:
//
//	Keldon_Johnson_3points_23.mp4
//
// The canonical form joins the player name with a literal space, normalizes
// the category through the configured table, and zero-pads the index:
//
//	Keldon Johnson_3pt_023.mp4
//
// Because the canonical form uses a space where the legacy form requires an
// underscore, canonical names never re-match the legacy grammar. Running the
// tool over an already converged tree proposes no renames.
const mappingCSVSuffix = "_url_mapping.csv"

var (
	// clipExtRe matches the clip file extensions this tool operates on.
	clipExtRe = regexp.MustCompile(`(?i)\.(mp4|json)$`)

	// videoExtRe matches video clips only.
	videoExtRe = regexp.MustCompile(`(?i)\.mp4$`)

	// sidecarExtRe matches JSON metadata sidecars only.
	sidecarExtRe = regexp.MustCompile(`(?i)\.json$`)

	// mappingCSVRe matches any player URL mapping file regardless of how the
	// player name portion is joined.
	mappingCSVRe = regexp.MustCompile(`(?i)_url_mapping\.csv$`)
)

// IsClipFile reports whether filename has a clip extension (.mp4 or .json).
func IsClipFile(filename string) bool {
	return clipExtRe.MatchString(filename)
}

// IsVideo reports whether filename is a video clip.
func IsVideo(filename string) bool {
	return videoExtRe.MatchString(filename)
}

// IsSidecar reports whether filename is a JSON metadata sidecar.
func IsSidecar(filename string) bool {
	return sidecarExtRe.MatchString(filename)
}

// IsMappingCSV reports whether filename looks like a URL mapping file.
func IsMappingCSV(filename string) bool {
	return mappingCSVRe.MatchString(filename)
}

// Stem returns filename without its extension. Stems are the join key
// between renamed clips and the rows of the URL mapping CSV.
func Stem(filename string) string {
	if i := strings.LastIndex(filename, "."); i != -1 {
		return filename[:i]
	}
	return filename
}

// Ext returns the lowercased extension of filename, including the dot.
func Ext(filename string) string {
	if i := strings.LastIndex(filename, "."); i != -1 {
		return strings.ToLower(filename[i:])
	}
	return ""
}

// Components holds the structured pieces parsed out of a legacy clip name.
type Components struct {
	Category string // canonical category token, already normalized
	Index    int
	Ext      string // lowercased, including the dot
}

// Parser recognizes one player's legacy clip names and produces canonical
// replacements. It is a pure function of its inputs and holds no run state,
// so it can be shared freely between the walker and the rewrite stages.
type Parser struct {
	player     Player
	categories map[string]string
	indexWidth int
	legacyRe   *regexp.Regexp
	canonRe    *regexp.Regexp
}

// NewParser compiles a Parser for the given player. categories maps legacy
// tokens to canonical ones (e.g. "3points" -> "3pt"); tokens absent from the
// table are treated as non-matching rather than guessed. indexWidth is the
// zero-padding width for clip indices.
func NewParser(player Player, categories map[string]string, indexWidth int) *Parser {
	if indexWidth < 1 {
		indexWidth = 3
	}

	lowered := make(map[string]string, len(categories))
	for legacy, canonical := range categories {
		lowered[strings.ToLower(legacy)] = canonical
	}

	legacyAlt := alternation(keys(lowered))
	canonAlt := alternation(values(lowered))

	legacyRe := regexp.MustCompile(fmt.Sprintf(`(?i)^%s_%s_(%s)_(\d+)\.(mp4|json)$`,
		regexp.QuoteMeta(player.First), regexp.QuoteMeta(player.Last), legacyAlt))
	canonRe := regexp.MustCompile(fmt.Sprintf(`^%s_(%s)_(\d+)\.(mp4|json)$`,
		regexp.QuoteMeta(player.FullName()), canonAlt))

	return &Parser{
		player:     player,
		categories: lowered,
		indexWidth: indexWidth,
		legacyRe:   legacyRe,
		canonRe:    canonRe,
	}
}

// Player returns the identity the parser was compiled for.
func (p *Parser) Player() Player { return p.player }

// Parse attempts to interpret filename as a legacy clip name. It returns the
// parsed components and true on a match, or a zero value and false when any
// required token is missing or the category is unrecognized.
func (p *Parser) Parse(filename string) (Components, bool) {
	m := p.legacyRe.FindStringSubmatch(filename)
	if m == nil {
		return Components{}, false
	}
	canonical, ok := p.NormalizeCategory(m[1])
	if !ok {
		return Components{}, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return Components{}, false
	}
	return Components{
		Category: canonical,
		Index:    index,
		Ext:      "." + strings.ToLower(m[3]),
	}, true
}

// Canonical renders the canonical filename for the given components.
func (p *Parser) Canonical(c Components) string {
	return fmt.Sprintf("%s_%s_%0*d%s", p.player.FullName(), c.Category, p.indexWidth, c.Index, c.Ext)
}

// Normalize maps a legacy clip name to its canonical replacement. The second
// return value is false when filename does not match the legacy grammar; the
// caller is expected to skip and report rather than fail the run.
func (p *Parser) Normalize(filename string) (string, bool) {
	c, ok := p.Parse(filename)
	if !ok {
		return "", false
	}
	return p.Canonical(c), true
}

// NormalizeCategory maps a category token to its canonical form via the
// configured table. Unknown tokens report false so callers can preserve the
// original value.
func (p *Parser) NormalizeCategory(token string) (string, bool) {
	canonical, ok := p.categories[strings.ToLower(token)]
	return canonical, ok
}

// IsCanonical reports whether filename is already in canonical form for this
// player. Such files are left untouched and shown as requiring no change.
func (p *Parser) IsCanonical(filename string) bool {
	return p.canonRe.MatchString(filename)
}

func alternation(tokens []string) string {
	sort.Strings(tokens)
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func values(m map[string]string) []string {
	seen := make(map[string]struct{}, len(m))
	out := make([]string, 0, len(m))
	for _, v := range m {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
