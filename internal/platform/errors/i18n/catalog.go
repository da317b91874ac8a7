// Package i18n renders error messages from the "errors" namespace of the
// embedded locale catalog.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/dilemma/internal/platform/i18n/catalog"
)

const namespace = "errors"

// Code is a machine-readable error code.
type Code = string

// Catalog holds the error templates of one resolved locale. Templates are
// parsed once; an entry that fails to parse renders its raw text.
type Catalog struct {
	raw       map[Code]string
	templates map[Code]*template.Template
}

// catalogs caches one Catalog per resolved locale of the default bundle.
var catalogs sync.Map

// GetCatalog returns the error catalog for locale. The locale is matched the
// same way report printers match it, so "pt" and "pt-BR" share a catalog and
// unsupported locales fall back to en-US.
func GetCatalog(locale string) *Catalog {
	bundle := i18ncatalog.Default()
	resolved := bundle.Resolve(locale)
	if cached, ok := catalogs.Load(resolved); ok {
		return cached.(*Catalog)
	}
	_, messages := bundle.NamespaceMessagesWithFallback(resolved, namespace)
	actual, _ := catalogs.LoadOrStore(resolved, newCatalog(messages))
	return actual.(*Catalog)
}

func newCatalog(messages map[string]string) *Catalog {
	c := &Catalog{
		raw:       make(map[Code]string, len(messages)),
		templates: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if t, err := template.New(code).Option("missingkey=zero").Parse(text); err == nil {
			c.templates[code] = t
		}
	}
	return c
}

// Format renders the message for code with metadata as template data.
// Unknown codes render as the code itself.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	raw, ok := c.raw[code]
	if !ok {
		return code
	}
	t, ok := c.templates[code]
	if !ok {
		return raw
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := t.Execute(&b, metadata); err != nil {
		return raw
	}
	return b.String()
}
