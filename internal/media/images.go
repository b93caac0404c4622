package media

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// prefixLen is how many characters of a title are used for the prefix and
// containment fallbacks.
const prefixLen = 14

var (
	titleMarks       = strings.NewReplacer("™", "", "®", "", "©", "")
	titlePunctuation = regexp.MustCompile(`[:’'‘!?.(),\-]`)
	titleSpaces      = regexp.MustCompile(`\s+`)
	nonBare          = regexp.MustCompile(`[^a-z0-9 ]`)
	parenthetical    = regexp.MustCompile(`\(.*?\)`)
)

// ImageEntry is one record of the image index file.
type ImageEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type indexKey struct {
	key     string
	unparen string
	url     string
}

// ImageIndex maps game titles to cover image URLs. It is built once and is
// read-only afterwards, so it is safe for concurrent use.
type ImageIndex struct {
	byKey map[string]string
	keys  []indexKey // insertion order, for the fuzzy fallbacks
}

// NewImageIndex builds an index from entries. Entries without a name or URL
// are skipped. When two entries normalize to the same key the later wins.
func NewImageIndex(entries []ImageEntry) *ImageIndex {
	idx := &ImageIndex{byKey: make(map[string]string, len(entries)*2)}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.URL) == "" {
			continue
		}
		base := NormalizeTitle(e.Name)
		bare := bareTitle(base)
		unparen := NormalizeTitle(parenthetical.ReplaceAllString(e.Name, ""))
		for _, k := range []string{base, bare} {
			if _, seen := idx.byKey[k]; !seen {
				idx.keys = append(idx.keys, indexKey{key: k, unparen: unparen, url: e.URL})
			}
			idx.byKey[k] = e.URL
		}
	}
	return idx
}

// LoadImageIndex reads a JSON array of {"name","url"} objects.
func LoadImageIndex(r io.Reader) (*ImageIndex, error) {
	var entries []ImageEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode image index: %w", err)
	}
	return NewImageIndex(entries), nil
}

// LoadImageIndexFile reads the index from path. An empty path yields an
// empty index.
func LoadImageIndexFile(path string) (*ImageIndex, error) {
	if path == "" {
		return NewImageIndex(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image index: %w", err)
	}
	defer f.Close()
	return LoadImageIndex(f)
}

// Len returns the number of distinct keys in the index.
func (idx *ImageIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byKey)
}

// Lookup returns the image URL for a game title, or "" when nothing fits.
//
// Matching tries, in order: the normalized title, its bare form (letters,
// digits and spaces only), the first key starting with the title's first
// 14 characters, the first key containing them, and finally the first key
// whose name without parenthesized parts equals the title.
func (idx *ImageIndex) Lookup(title string) string {
	if idx == nil {
		return ""
	}
	key := NormalizeTitle(title)
	if key == "" {
		return ""
	}
	if url, ok := idx.byKey[key]; ok {
		return url
	}
	if url, ok := idx.byKey[bareTitle(key)]; ok {
		return url
	}

	short := key
	if r := []rune(key); len(r) > prefixLen {
		short = string(r[:prefixLen])
	}
	for _, k := range idx.keys {
		if strings.HasPrefix(k.key, short) {
			return k.url
		}
	}
	for _, k := range idx.keys {
		if strings.Contains(k.key, short) {
			return k.url
		}
	}
	for _, k := range idx.keys {
		if k.unparen == key {
			return k.url
		}
	}
	return ""
}

// LookupFirst returns the image of the first title that has one.
func (idx *ImageIndex) LookupFirst(titles ...string) string {
	for _, t := range titles {
		if url := idx.Lookup(t); url != "" {
			return url
		}
	}
	return ""
}

// NormalizeTitle lower-cases a title, removes trademark signs and accents,
// turns punctuation into spaces and collapses whitespace.
func NormalizeTitle(title string) string {
	s := titleMarks.Replace(strings.ToLower(title))
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = titlePunctuation.ReplaceAllString(s, " ")
	s = titleSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func bareTitle(key string) string {
	return nonBare.ReplaceAllString(key, "")
}
