package composer

import (
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// renderRegion turns one region's stored markup into resolved HTML. A failure
// is contained to the region: it renders empty with an error marker and the
// other regions are unaffected.
func (c *Composer) renderRegion(name style.RegionName, raw string, data Context, unresolved map[string]struct{}, result *Result) (out RegionResult) {
	out.Name = name
	local := make(map[string]struct{})

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrRegionFailed, r)
			c.logger.Error("region render failed", "region", name, "error", err)
			out.HTML = ""
			out.Error = "render-failed"
			result.Warnings = append(result.Warnings, Warning{Region: name, Message: err.Error(), Err: err})
			return
		}
		for key := range local {
			unresolved[key] = struct{}{}
		}
	}()

	doc, warnings := markup.Load(raw, c.schema)
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, Warning{Region: name, Message: w.Error(), Err: w})
	}

	resolve := func(e markup.Embed) (string, bool) {
		key := e.Attr("key")
		value, ok := data.Text(key)
		if !ok && key != "" {
			local[key] = struct{}{}
		}
		return value, ok
	}
	out.HTML = markup.RenderHTML(doc, c.schema, resolve)
	return out
}
