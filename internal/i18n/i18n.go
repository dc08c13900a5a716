// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for Livetable.
// It uses the go-i18n library to load and manage translation files. Message IDs
// are the English source strings, so an unknown ID still renders readable text.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle

	mu      sync.RWMutex
	current *Localizer
)

func loadBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		files, _ := fs.ReadDir(localeFS, "locales")
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			data, _ := localeFS.ReadFile("locales/" + f.Name())
			_, _ = bundle.ParseMessageFileBytes(data, f.Name())
		}
	})
	return bundle
}

// Localizer translates message IDs into one language. It satisfies the
// translator interfaces used by the table renderer and paginator.
type Localizer struct {
	lang string
	loc  *i18n.Localizer
}

// NewLocalizer returns a Localizer for lang (e.g. "de" or an
// Accept-Language header value). English is the fallback.
func NewLocalizer(lang string) *Localizer {
	return &Localizer{lang: lang, loc: i18n.NewLocalizer(loadBundle(), lang, "en")}
}

// Lang returns the language the localizer was created for.
func (l *Localizer) Lang() string { return l.lang }

// Tag returns the best-matching supported language tag.
func (l *Localizer) Tag() language.Tag {
	tags, _, err := language.ParseAcceptLanguage(l.lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	matcher := language.NewMatcher(loadBundle().LanguageTags())
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return language.Make(base.String())
}

// T translates messageID. If no translation exists the ID itself is returned.
func (l *Localizer) T(messageID string) string {
	return l.TData(messageID, nil)
}

// TData translates messageID, executing its template with data.
func (l *Localizer) TData(messageID string, data map[string]any) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		// missing IDs fall back to the ID with its placeholders filled in
		return fallback(messageID, data)
	}
	return msg
}

func fallback(id string, data map[string]any) string {
	if len(data) == 0 || !strings.Contains(id, "{{") {
		return id
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{."+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(id)
}

// Init sets up the package-level localizer for lang.
func Init(lang string) {
	mu.Lock()
	defer mu.Unlock()
	current = NewLocalizer(lang)
}

// SetLang changes the active language of the package-level localizer.
func SetLang(lang string) {
	Init(lang)
}

// Default returns the package-level localizer, initialising English if
// Init has not been called.
func Default() *Localizer {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		Init("en")
		return Default()
	}
	return l
}

// T is a convenience function to translate a message by its ID with the
// package-level localizer.
func T(messageID string) string {
	return Default().T(messageID)
}

// TData translates a templated message with the package-level localizer.
func TData(messageID string, data map[string]any) string {
	return Default().TData(messageID, data)
}

// AvailableLocales maps each embedded locale to its name in that language.
func AvailableLocales() map[string]string {
	out := make(map[string]string)
	for _, tag := range loadBundle().LanguageTags() {
		out[tag.String()] = display.Self.Name(tag)
	}
	return out
}
