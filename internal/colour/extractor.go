package colour

import (
	"fmt"
	"sort"
)

// Cluster is a dominant colour found in an image: a centroid plus the
// fraction of sampled pixels that belong to it.
type Cluster struct {
	RGB    RGB     `json:"rgb"`
	Hex    string  `json:"hex"`
	Weight float64 `json:"weight"`
}

// Palette is an ordered list of clusters, heaviest first.
type Palette struct {
	Clusters []Cluster `json:"clusters"`
}

// Len returns the number of clusters in the palette.
func (p *Palette) Len() int {
	return len(p.Clusters)
}

// Hexes returns the cluster colours as hex strings in palette order.
func (p *Palette) Hexes() []string {
	hexes := make([]string, len(p.Clusters))
	for i, c := range p.Clusters {
		hexes[i] = c.RGB.Hex()
	}
	return hexes
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Clusters) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Clusters))
	for i, c := range p.Clusters {
		result += fmt.Sprintf("  %2d: %s (weight %.3f)\n", i+1, c.RGB.Hex(), c.Weight)
	}
	return result
}

// newPalette builds a palette from centroids and weights, ordered by
// descending weight. Equal weights are broken by lower hue, then lower
// luminance, then raw channel order. The last comparison makes the order
// total, so extraction output is stable even when the inputs arrive from
// map iteration.
func newPalette(centroids []RGB, weights []float64) *Palette {
	clusters := make([]Cluster, len(centroids))
	for i, c := range centroids {
		clusters[i] = Cluster{RGB: c, Hex: c.Hex(), Weight: weights[i]}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Weight != clusters[j].Weight {
			return clusters[i].Weight > clusters[j].Weight
		}
		hi, _, _ := ToHSL(clusters[i].RGB)
		hj, _, _ := ToHSL(clusters[j].RGB)
		if hi != hj {
			return hi < hj
		}
		li, lj := Luminance(clusters[i].RGB), Luminance(clusters[j].RGB)
		if li != lj {
			return li < lj
		}
		return clusters[i].Hex < clusters[j].Hex
	})

	return &Palette{Clusters: clusters}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	// ClusterCount is the target number of dominant colours.
	ClusterCount int

	// Stride is the pixel subsampling stride. Zero means the stride is
	// computed from the image size so sampling stays bounded.
	Stride int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ClusterCount: 6,
		Stride:       0,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.ClusterCount < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", c.ClusterCount)
	}
	if c.ClusterCount > 64 {
		return fmt.Errorf("cluster count too large: %d (maximum: 64)", c.ClusterCount)
	}
	if c.Stride < 0 {
		return fmt.Errorf("stride cannot be negative, got %d", c.Stride)
	}
	return nil
}
