package colour

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// KMeansExtractor implements dominant-colour extraction using k-means
// clustering in RGB space. Extraction is fully deterministic: pixels are
// subsampled on a fixed grid and centroids are seeded evenly across the
// luminance-sorted sample, so the same image and configuration always
// produce the same palette.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   1.0,
		maxSamples:    5000,
	}
}

// Extract extracts dominant colours from an image.
// Returns clusters ordered by descending weight. If the image has fewer
// distinct colours than requested, only the distinct colours are returned.
func (e *KMeansExtractor) Extract(img image.Image, cfg ExtractorConfig) (*Palette, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor configuration: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrEmptyImageInput)
	}

	pixels := e.samplePixels(img, cfg.Stride)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrEmptyImageInput)
	}

	// Count distinct colours first: with fewer distinct colours than
	// clusters, frequency counting is exact and clustering is pointless.
	counts := make(map[RGB]int, len(pixels))
	for _, p := range pixels {
		counts[p]++
	}

	if len(counts) <= cfg.ClusterCount {
		return paletteFromCounts(counts, len(pixels)), nil
	}

	centroids, weights := e.kmeans(pixels, cfg.ClusterCount)
	return newPalette(centroids, weights), nil
}

// paletteFromCounts builds a palette directly from exact colour frequencies.
func paletteFromCounts(counts map[RGB]int, total int) *Palette {
	centroids := make([]RGB, 0, len(counts))
	weights := make([]float64, 0, len(counts))
	for rgb, n := range counts {
		centroids = append(centroids, rgb)
		weights = append(weights, float64(n)/float64(total))
	}
	return newPalette(centroids, weights)
}

// samplePixels samples pixels from the image on a fixed grid.
// A stride of zero computes one from the image size so the sample count
// stays near maxSamples. Grid sampling keeps results reproducible for the
// same image and stride.
func (e *KMeansExtractor) samplePixels(img image.Image, stride int) []RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	totalPixels := width * height
	if totalPixels == 0 {
		return nil
	}

	if stride == 0 {
		stride = max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)
	}

	pixels := make([]RGB, 0, totalPixels/(stride*stride)+1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}

	return pixels
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() RGB {
	return RGB{
		R: uint8(math.Round(p.R)),
		G: uint8(math.Round(p.G)),
		B: uint8(math.Round(p.B)),
	}
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(pixels []RGB, k int) ([]RGB, []float64) {
	points := make([]point3D, len(pixels))
	for i, rgb := range pixels {
		points[i] = point3D{
			R: float64(rgb.R),
			G: float64(rgb.G),
			B: float64(rgb.B),
		}
	}

	centroids := e.initialCentroids(points, k)
	assignments := make([]int, len(points))

	// Iterate until convergence or max iterations. The fixed bound
	// guarantees termination.
	for iter := 0; iter < e.maxIterations; iter++ {
		for i, point := range points {
			assignments[i] = nearestCentroid(point, centroids)
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		avgMovement := totalMovement / float64(k)

		centroids = newCentroids

		if avgMovement < e.convergence {
			break
		}
	}

	// Final assignment pass so weights match the final centroids.
	weights := make([]float64, k)
	for i, point := range points {
		assignments[i] = nearestCentroid(point, centroids)
		weights[assignments[i]]++
	}

	totalPixels := float64(len(points))
	for i := range weights {
		weights[i] /= totalPixels
	}

	out := make([]RGB, k)
	for i, c := range centroids {
		out[i] = c.rgb()
	}
	return out, weights
}

// initialCentroids seeds k centroids evenly spaced across the sample sorted
// by relative luminance. Deterministic by construction, unlike k-means++
// seeding, so repeated extraction of the same image is reproducible.
func (e *KMeansExtractor) initialCentroids(points []point3D, k int) []point3D {
	sorted := make([]point3D, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Luminance(sorted[i].rgb()) < Luminance(sorted[j].rgb())
	})

	centroids := make([]point3D, k)
	for i := range k {
		// Midpoint of the i-th of k equal luminance bands.
		idx := (2*i + 1) * len(sorted) / (2 * k)
		centroids[i] = sorted[idx]
	}
	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions as the mean of their
// assigned points. A cluster that lost all members keeps its previous
// centroid rather than being reseeded, which keeps iteration deterministic.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			centroids[i] = previous[i]
		}
	}

	return centroids
}
