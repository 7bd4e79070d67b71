package documentcolor

import (
	"fmt"
	"strings"

	"bennypowers.dev/csstree/internal/collections"
	"bennypowers.dev/csstree/internal/color"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/helpers"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentColor handles the textDocument/documentColor request. Every hex
// color literal in the document's CSS is reported.
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI
	log.Info("DocumentColor requested: %s", uri)

	analysis, err := req.Server.DocumentManager().Analyze(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}
	if analysis == nil {
		return nil, nil
	}

	colors := make([]protocol.ColorInformation, 0, len(analysis.Colors))
	for _, ref := range analysis.Colors {
		c, err := color.FromHex(ref.Hex)
		if err != nil {
			// Partial results are still useful; the middleware logs warnings
			req.AddWarning(fmt.Errorf("color %s: %w", ref.Raw, err))
			continue
		}
		colors = append(colors, protocol.ColorInformation{
			Range: helpers.ToProtocolRange(ref.Range),
			Color: toProtocolColor(c),
		})
	}

	log.Info("Found %d colors", len(colors))
	return colors, nil
}

// ColorPresentation handles the textDocument/colorPresentation request. The
// literal as written comes first when it still spells the picked color,
// followed by its hex, rgb() and hsl() spellings.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := params.TextDocument.URI
	log.Info("ColorPresentation requested: %s", uri)

	picked := fromProtocolColor(params.Color)
	labels := collections.NewOrderedSet[string]()
	if raw := writtenLiteral(req, uri, params.Range); raw != "" {
		if c, err := color.Parse(raw); err == nil && c.HexString() == picked.HexString() {
			labels.Add(raw)
		}
	}
	labels.Add(color.Presentations(picked)...)

	presentations := make([]protocol.ColorPresentation, 0, labels.Len())
	for label := range labels.All() {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: label,
			},
		})
	}
	return presentations, nil
}

// writtenLiteral returns the color literal of the document under rng, or ""
func writtenLiteral(req *types.RequestContext, uri string, rng protocol.Range) string {
	analysis, err := req.Server.DocumentManager().Analyze(uri)
	if err != nil {
		req.AddWarning(err)
		return ""
	}
	if analysis == nil {
		return ""
	}
	for _, ref := range analysis.Colors {
		if helpers.RangesIntersect(helpers.ToProtocolRange(ref.Range), rng) {
			return strings.TrimSpace(ref.Raw)
		}
	}
	return ""
}

func toProtocolColor(c csscolorparser.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R),
		Green: protocol.Decimal(c.G),
		Blue:  protocol.Decimal(c.B),
		Alpha: protocol.Decimal(c.A),
	}
}

func fromProtocolColor(c protocol.Color) csscolorparser.Color {
	return csscolorparser.Color{
		R: float64(c.Red),
		G: float64(c.Green),
		B: float64(c.Blue),
		A: float64(c.Alpha),
	}
}
