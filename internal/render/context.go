package render

import (
	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/types"
	"github.com/themerdev/themer/internal/upstream"
)

// requiredContextKey is the sentinel every render context must carry. Its
// absence after context construction means collaborator wiring is broken,
// which is a defect in themer, not bad input.
const requiredContextKey = "scheme"

// buildContext assembles the value context one template execution sees.
func buildContext(theme *types.Theme, scheme *types.Scheme, special *upstream.Special, style map[string]string, swatch *types.Swatch) (map[string]any, error) {
	context := map[string]any{
		"theme":        theme.Name.String(),
		"theme_ascii":  theme.NameASCII,
		"scheme":       scheme.Name.String(),
		"scheme_ascii": scheme.NameASCII,
		"palette":      scheme.Palette,
		"roles":        scheme.Roles,
		"meta":         scheme.Meta,
		"extra":        scheme.Extra,
		"special":      special,
		"style":        style,
	}

	if swatch != nil {
		context["swatch"] = *swatch
	}

	if _, ok := context[requiredContextKey]; !ok {
		return nil, errors.InternalBug("render",
			"context for scheme "+scheme.Name.String()+" missing required "+requiredContextKey+" variable")
	}

	return context, nil
}
