// Package words loads the list of words the bot must never post.
package words

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/KhanMaytok/reddit-karma-farming-bot/cache"
	"github.com/cockroachdb/errors"
)

// List is a set of disallowed words, stored lower case.
type List struct {
	words   []string
	pattern *regexp.Regexp
}

// NewList returns a List of words, ignoring blanks.
func NewList(words ...string) List {
	var l List
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		l.words = append(l.words, w)
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) > 0 {
		l.pattern = regexp.MustCompile(`(?i)(^|[^\pL\pN_])(` + strings.Join(quoted, "|") + `)($|[^\pL\pN_])`)
	}
	return l
}

// Words returns the words of the list.
func (l List) Words() []string { return l.words }

// Len returns the number of words.
func (l List) Len() int { return len(l.words) }

// Contains reports whether text has any of the words as a whole word, ignoring case.
func (l List) Contains(text string) bool {
	return l.pattern != nil && l.pattern.MatchString(text)
}

// Loader reads word files, remembering each file by path.
type Loader struct {
	load *cache.Func1[string, List]
}

// NewLoader returns a Loader. A ttl of cache.NeverExpire keeps files until Forget.
func NewLoader(ttl time.Duration) (*Loader, error) {
	load, err := cache.NewFunc1(readFile, cache.WithMaxSize(16), cache.WithTTL(ttl))
	if err != nil {
		return nil, err
	}
	return &Loader{load: load}, nil
}

// Load returns the words in path, one per line.
func (l *Loader) Load(path string) (List, error) {
	return l.load.Call(path)
}

// Forget drops every remembered file.
func (l *Loader) Forget() {
	l.load.Clear()
}

func readFile(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, errors.Wrapf(err, "words: open %s", path)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return List{}, errors.Wrapf(err, "words: read %s", path)
	}
	return NewList(lines...), nil
}
