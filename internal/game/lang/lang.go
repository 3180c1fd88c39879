// Package lang provides the translation table for game replies: language
// codes, message keys, and template strings with named placeholders.
package lang

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default is the fallback language for players with no preference and for
// keys missing from a translated table.
const Default = "en"

//go:embed languages.yaml
var rawTables []byte

type tables struct {
	Languages map[string]string            `yaml:"languages"`
	Messages  map[string]map[string]string `yaml:"messages"`
}

var table tables

func init() {
	if err := yaml.Unmarshal(rawTables, &table); err != nil {
		panic(fmt.Sprintf("parsing embedded language tables: %v", err))
	}
	if _, ok := table.Messages[Default]; !ok {
		panic("embedded language tables missing the default language")
	}
}

// Valid reports whether code is a supported language code.
func Valid(code string) bool {
	_, ok := table.Languages[code]
	return ok
}

// Name returns the native display name for a language code, or the code
// itself if unknown.
func Name(code string) string {
	if name, ok := table.Languages[code]; ok {
		return name
	}
	return code
}

// Available returns the supported codes with native names, sorted by code,
// formatted for the invalid-language reply.
func Available() string {
	codes := make([]string, 0, len(table.Languages))
	for code := range table.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s (%s)", code, table.Languages[code])
	}
	return strings.Join(parts, ", ")
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Translate renders the template for key in the given language, substituting
// {param}-style placeholders from params. Unknown languages or missing keys
// fall back to English; placeholders without a value are left intact; a key
// absent from every table renders as the key itself.
func Translate(language, key string, params map[string]string) string {
	msgs, ok := table.Messages[language]
	if !ok {
		msgs = table.Messages[Default]
	}
	tmpl, ok := msgs[key]
	if !ok {
		tmpl, ok = table.Messages[Default][key]
		if !ok {
			return key
		}
	}

	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := params[name]; ok {
			return v
		}
		return m
	})
}
