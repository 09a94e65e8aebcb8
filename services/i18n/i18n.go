package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed *.json
var fs embed.FS

// translations stores flattened keys: "en" -> "courses.clear_all" -> "Clear all"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	defaultLang  = "en"
)

// Load reads every embedded <lang>.json file into the translation table
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var nested map[string]interface{}
		if err := json.Unmarshal(content, &nested); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		translations[lang] = flat
		log.Printf("Loaded locale: %s (%d keys)", lang, len(flat))
	}

	return nil
}

// Supported returns the loaded language codes, sorted
func Supported() []string {
	mutex.RLock()
	defer mutex.RUnlock()

	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsSupported reports whether lang has a loaded translation table
func IsSupported(lang string) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	_, ok := translations[lang]
	return ok
}

// flatten turns nested JSON objects into dot-notation keys
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(key, child, result)
		case string:
			result[key] = child
		default:
			result[key] = fmt.Sprintf("%v", child)
		}
	}
}

// T translates key into the locale carried by ctx
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate looks key up in lang, then in the default language, and finally
// returns the key itself. {name} placeholders are filled from args.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != defaultLang {
		if trans, ok := translations[defaultLang]; ok {
			if val, ok := trans[key]; ok {
				return format(val, args...)
			}
		}
	}

	return key
}

// FormatNumber renders n with the digit grouping of the locale in ctx
func FormatNumber(ctx context.Context, n int) string {
	tag, err := language.Parse(GetLocale(ctx))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// format replaces {var} placeholders with values from args if present
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// WithLocale returns a copy of ctx carrying lang
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale extracts the locale set by the Locale middleware, defaulting to "en"
func GetLocale(ctx context.Context) string {
	if val, ok := ctx.Value(LocaleContextKey).(string); ok && val != "" {
		return val
	}
	return defaultLang
}
