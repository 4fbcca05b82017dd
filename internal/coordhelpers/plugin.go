package coordhelpers

import (
	"github.com/banshee-data/skylink/internal/astro"
	"github.com/banshee-data/skylink/internal/plugin"
)

// Helpers returns every coordinate helper in a stable order.
func Helpers(tr *astro.Transformer) []plugin.LinkHelper {
	return []plugin.LinkHelper{
		NewGalacticToFK5(tr),
		NewFK4ToFK5(tr),
		NewICRSToFK5(tr),
		NewGalacticToFK4(tr),
		NewICRSToFK4(tr),
		NewICRSToGalactic(tr),
		NewGalactocentricToGalactic(tr),
	}
}

// Plugin registers the coordinate helpers.
type Plugin struct {
	tr *astro.Transformer
}

// New constructs the coordinate helpers plugin.
func New(tr *astro.Transformer) Plugin {
	return Plugin{tr: tr}
}

// Name returns the plugin identifier.
func (Plugin) Name() string { return "coordinate_helpers" }

// Version returns the plugin semantic version.
func (Plugin) Version() string { return "0.1.0" }

// Register adds every helper to the registry.
func (p Plugin) Register(registry *plugin.Registry) error {
	for _, h := range Helpers(p.tr) {
		if err := registry.RegisterHelper(h); err != nil {
			return err
		}
	}
	return nil
}
