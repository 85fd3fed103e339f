package region

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadDir reads every *.geojson file in dir into one Set. Polygon and
// MultiPolygon features become zones; other geometry types are ignored.
// Zone names come from a "name" feature property when present, otherwise
// from the file name. A directory with no matching files yields an empty
// set.
func LoadDir(dir string) (*Set, error) {
	pattern := filepath.Join(dir, "*.geojson")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	var zones []Zone
	for _, file := range files {
		loaded, err := loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
		zones = append(zones, loaded...)
	}
	return NewSet(zones...), nil
}

func loadFile(path string) ([]Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feature collection: %w", err)
	}

	var zones []Zone
	for _, feature := range collection.Features {
		name := featureName(feature, path, len(zones))
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			zones = append(zones, Zone{Name: name, Polygon: geometry})
		case orb.MultiPolygon:
			for _, polygon := range geometry {
				zones = append(zones, Zone{Name: name, Polygon: polygon})
			}
		}
	}
	return zones, nil
}

func featureName(feature *geojson.Feature, path string, index int) string {
	if name, ok := feature.Properties["name"].(string); ok && name != "" {
		return name
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("%s-%d", base, index)
}
