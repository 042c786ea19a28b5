package composer

const defaultLang = "pt-BR"

// pageData is the context of the document template. Hidden regions are left
// out of the markup.
func pageData(req Request, result Result) map[string]any {
	title := req.Title
	if title == "" {
		title = req.Kind.Definition().Title
	}
	lang := req.Lang
	if lang == "" {
		lang = defaultLang
	}

	regions := make([]map[string]any, 0, len(result.Regions))
	for _, r := range result.Regions {
		if r.Hidden {
			continue
		}
		regions = append(regions, map[string]any{
			"name":  string(r.Name),
			"html":  r.HTML,
			"error": r.Error,
		})
	}
	layers := make([]map[string]any, 0, len(result.Layers))
	for _, l := range result.Layers {
		layers = append(layers, map[string]any{"name": l.Name, "z": l.ZIndex})
	}

	return map[string]any{
		"lang":  lang,
		"title": title,
		"kind":  req.Kind.String(),
		"css":   result.CSS,
		"page": map[string]any{
			"size":        result.Page.Size,
			"orientation": result.Page.Orientation,
			"width":       result.Page.Width,
			"height":      result.Page.Height,
		},
		"layers":  layers,
		"regions": regions,
	}
}
