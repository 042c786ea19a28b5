package markup

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var classPattern = regexp.MustCompile(`^[A-Za-z0-9_\- ]+$`)

// Sanitize strips markup outside the region whitelist for the given schema.
// Disallowed elements are removed but their text content is kept.
func (s *Schema) Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := s.policy
	if policy == nil {
		policy = newPolicy(nil)
	}
	return policy.Sanitize(trimmed)
}

func newPolicy(types []EmbedType) *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements(
		"p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote",
		"ol", "ul", "li", "br",
		"strong", "b", "em", "i", "u", "s", "strike", "del", "span",
	)
	policy.AllowAttrs("class").Matching(classPattern).Globally()
	policy.AllowAttrs("style").Globally()

	for _, t := range types {
		if ext, ok := t.(PolicyExtender); ok {
			ext.ExtendPolicy(policy)
		}
	}
	return policy
}
