package detection

import (
	"image"
)

// Strategy names one of the three board-location methods.
type Strategy string

const (
	// StrategyLines scores rectangles built from detected grid lines.
	StrategyLines Strategy = "lines"
	// StrategyProjection scans edge-density projection profiles for
	// sustained boundaries.
	StrategyProjection Strategy = "projection"
	// StrategyDark takes the bounding box of rows and columns holding
	// enough dark pixels.
	StrategyDark Strategy = "dark"
)

// Config tunes the rectangle locator. Zero values are not usable;
// start from DefaultConfig.
type Config struct {
	// LineRunFraction is the minimum fraction of a row or column that a
	// contiguous edge run must cover to count as a grid line.
	LineRunFraction float64

	// LineGroupMarginFraction of min(width, height) is the distance
	// within which nearby lines merge into one.
	LineGroupMarginFraction float64

	// MinSideFraction rejects candidate rectangles narrower or shorter
	// than this fraction of the image.
	MinSideFraction float64

	// BorderMarginFraction of min(width, height) defines the border zone;
	// candidates touching it are penalized for likely swallowing header
	// or footer text.
	BorderMarginFraction float64

	// HeaderMarginFraction of min(width, height) is the clearance from
	// the image border beyond which a located rectangle is considered
	// margined, i.e. the image carries content outside the board.
	HeaderMarginFraction float64

	// ProjectionDensity is the per-row/column edge density a projection
	// boundary must exceed.
	ProjectionDensity float64

	// ProjectionWindowFraction of the scanned dimension is the window
	// over which a boundary must be sustained.
	ProjectionWindowFraction float64

	// ProjectionSustain is the fraction of the window that must exceed
	// ProjectionDensity.
	ProjectionSustain float64

	// ProjectionMinCover rejects projection boxes covering less than
	// this fraction of either dimension.
	ProjectionMinCover float64

	// DarkPixelRatio is the fraction of a row or column that must be
	// darker than DarkThreshold to qualify for the dark bounding box.
	DarkPixelRatio float64

	// DarkThreshold is the intensity below which a pixel counts as dark.
	DarkThreshold uint8

	// Order fixes the priority of the three strategies. The first one
	// to produce a rectangle wins.
	Order []Strategy
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		LineRunFraction:          0.5,
		LineGroupMarginFraction:  0.03,
		MinSideFraction:          0.3,
		BorderMarginFraction:     0.02,
		HeaderMarginFraction:     0.05,
		ProjectionDensity:        0.15,
		ProjectionWindowFraction: 0.05,
		ProjectionSustain:        0.3,
		ProjectionMinCover:       0.2,
		DarkPixelRatio:           0.1,
		DarkThreshold:            200,
		Order:                    []Strategy{StrategyLines, StrategyProjection, StrategyDark},
	}
}

// Located is the outcome of a successful board search.
type Located struct {
	// Rect is the board rectangle in image coordinates.
	Rect image.Rectangle

	// Strategy that produced the rectangle.
	Strategy Strategy

	// Margined reports whether the rectangle sits clearly inside the
	// image, leaving room for header or caption content around it.
	// Downstream cell preprocessing binarizes harder on margined boards.
	Margined bool
}

// Locate finds the puzzle board rectangle using the configured strategy
// order. gray is the denoised grayscale image, edges its binary edge
// map. The boolean reports whether any strategy succeeded.
func Locate(gray, edges *image.Gray, cfg Config) (Located, bool) {
	for _, s := range cfg.Order {
		var r image.Rectangle
		var ok bool
		switch s {
		case StrategyLines:
			r, ok = linesRectangle(edges, cfg)
		case StrategyProjection:
			r, ok = projectionRectangle(edges, cfg)
		case StrategyDark:
			r, ok = darkRectangle(gray, cfg)
		}
		if ok {
			return Located{
				Rect:     r,
				Strategy: s,
				Margined: margined(r, edges.Bounds(), cfg),
			}, true
		}
	}
	return Located{}, false
}

// margined reports whether any side of r keeps more than the header
// clearance from the image border.
func margined(r image.Rectangle, bounds image.Rectangle, cfg Config) bool {
	clearance := int(cfg.HeaderMarginFraction * float64(minInt(bounds.Dx(), bounds.Dy())))
	return r.Min.X-bounds.Min.X > clearance ||
		r.Min.Y-bounds.Min.Y > clearance ||
		bounds.Max.X-r.Max.X > clearance ||
		bounds.Max.Y-r.Max.Y > clearance
}

// linesRectangle enumerates every ordered pair of grouped horizontal
// lines as (top, bottom) and vertical lines as (left, right), scores the
// resulting rectangles, and keeps the global best. Ties go to the first
// candidate found.
func linesRectangle(edges *image.Gray, cfg Config) (image.Rectangle, bool) {
	width := edges.Bounds().Dx()
	height := edges.Bounds().Dy()

	horizontal, vertical := DetectLines(edges, cfg.LineRunFraction)
	groupMargin := int(cfg.LineGroupMarginFraction * float64(minInt(width, height)))
	horizontal = GroupLines(horizontal, groupMargin)
	vertical = GroupLines(vertical, groupMargin)

	if len(horizontal) < 2 || len(vertical) < 2 {
		return image.Rectangle{}, false
	}

	minW := cfg.MinSideFraction * float64(width)
	minH := cfg.MinSideFraction * float64(height)
	borderMargin := int(cfg.BorderMarginFraction * float64(minInt(width, height)))

	var best image.Rectangle
	bestScore := 0.0
	for i := 0; i < len(horizontal); i++ {
		for j := i + 1; j < len(horizontal); j++ {
			top := horizontal[i].Pos
			bottom := horizontal[j].Pos
			if float64(bottom-top) < minH {
				continue
			}
			for k := 0; k < len(vertical); k++ {
				for l := k + 1; l < len(vertical); l++ {
					left := vertical[k].Pos
					right := vertical[l].Pos
					if float64(right-left) < minW {
						continue
					}
					score := scoreCandidate(left, top, right, bottom, width, height, borderMargin)
					if score > bestScore {
						bestScore = score
						best = image.Rect(left, top, right, bottom)
					}
				}
			}
		}
	}

	if bestScore == 0 {
		return image.Rectangle{}, false
	}
	return best, true
}

// scoreCandidate rates a candidate rectangle. Larger is better. The
// score combines area, squareness (puzzle boards are square), a bonus
// for near-square aspect ratios, and a penalty for touching the image
// border, where page headers and footers live.
func scoreCandidate(left, top, right, bottom, width, height, borderMargin int) float64 {
	w := float64(right - left)
	h := float64(bottom - top)
	if w <= 0 || h <= 0 {
		return 0
	}

	aspect := w / h
	if h < w {
		aspect = h / w
	}

	bonus := 1.0
	switch {
	case aspect > 0.9:
		bonus = 2.5
	case aspect > 0.8:
		bonus = 2.0
	case aspect > 0.7:
		bonus = 1.5
	}

	score := w * h * aspect * bonus
	if top <= borderMargin || bottom >= height-1-borderMargin {
		score *= 0.7
	}
	if left <= borderMargin || right >= width-1-borderMargin {
		score *= 0.8
	}
	return score
}

// projectionRectangle derives the board box from edge-density projection
// profiles: for each of the four boundaries it scans inward for the
// first position whose density exceeds the threshold and stays above it
// for enough of a sustained window.
func projectionRectangle(edges *image.Gray, cfg Config) (image.Rectangle, bool) {
	width := edges.Bounds().Dx()
	height := edges.Bounds().Dy()
	if width == 0 || height == 0 {
		return image.Rectangle{}, false
	}

	rowDensity := make([]float64, height)
	colCount := make([]int, width)
	for y := 0; y < height; y++ {
		count := 0
		for x := 0; x < width; x++ {
			if edges.Pix[y*edges.Stride+x] == 255 {
				count++
				colCount[x]++
			}
		}
		rowDensity[y] = float64(count) / float64(width)
	}
	colDensity := make([]float64, width)
	for x := 0; x < width; x++ {
		colDensity[x] = float64(colCount[x]) / float64(height)
	}

	top, okTop := sustainedBoundary(rowDensity, false, cfg)
	bottom, okBottom := sustainedBoundary(rowDensity, true, cfg)
	left, okLeft := sustainedBoundary(colDensity, false, cfg)
	right, okRight := sustainedBoundary(colDensity, true, cfg)
	if !okTop || !okBottom || !okLeft || !okRight {
		return image.Rectangle{}, false
	}

	if float64(right+1-left) < cfg.ProjectionMinCover*float64(width) ||
		float64(bottom+1-top) < cfg.ProjectionMinCover*float64(height) {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right+1, bottom+1), true
}

// sustainedBoundary scans a density profile from the front (or back when
// reverse is set) for the first index where the density exceeds the
// threshold and enough of the following (or preceding) window does too.
func sustainedBoundary(density []float64, reverse bool, cfg Config) (int, bool) {
	n := len(density)
	window := int(cfg.ProjectionWindowFraction * float64(n))
	if window < 1 {
		window = 1
	}
	need := cfg.ProjectionSustain * float64(window)

	for i := 0; i < n; i++ {
		idx := i
		if reverse {
			idx = n - 1 - i
		}
		if density[idx] <= cfg.ProjectionDensity {
			continue
		}
		sustained := 0
		for k := 0; k < window; k++ {
			j := idx + k
			if reverse {
				j = idx - k
			}
			if j < 0 || j >= n {
				break
			}
			if density[j] > cfg.ProjectionDensity {
				sustained++
			}
		}
		if float64(sustained) >= need {
			return idx, true
		}
	}
	return 0, false
}

// darkRectangle takes the bounding box of all rows and columns in which
// at least DarkPixelRatio of the pixels fall below DarkThreshold. Last
// resort for images where edge detection found nothing usable, such as
// low-contrast screenshots.
func darkRectangle(gray *image.Gray, cfg Config) (image.Rectangle, bool) {
	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()
	if width == 0 || height == 0 {
		return image.Rectangle{}, false
	}

	top, bottom := -1, -1
	for y := 0; y < height; y++ {
		if darkRowQualifies(gray, y, width, cfg) {
			if top < 0 {
				top = y
			}
			bottom = y
		}
	}
	left, right := -1, -1
	for x := 0; x < width; x++ {
		if darkColQualifies(gray, x, height, cfg) {
			if left < 0 {
				left = x
			}
			right = x
		}
	}

	if top < 0 || left < 0 || bottom-top < 2 || right-left < 2 {
		return image.Rectangle{}, false
	}

	r := image.Rect(left, top, right+1, bottom+1)

	// A board is mostly paper. A box that is mostly ink is not a board;
	// this keeps an all-black frame from passing as a detection.
	if darkFraction(gray, r, cfg.DarkThreshold) > 0.5 {
		return image.Rectangle{}, false
	}
	return r, true
}

func darkRowQualifies(gray *image.Gray, y, width int, cfg Config) bool {
	dark := 0
	for x := 0; x < width; x++ {
		if gray.Pix[y*gray.Stride+x] < cfg.DarkThreshold {
			dark++
		}
	}
	return float64(dark) >= cfg.DarkPixelRatio*float64(width)
}

func darkColQualifies(gray *image.Gray, x, height int, cfg Config) bool {
	dark := 0
	for y := 0; y < height; y++ {
		if gray.Pix[y*gray.Stride+x] < cfg.DarkThreshold {
			dark++
		}
	}
	return float64(dark) >= cfg.DarkPixelRatio*float64(height)
}

func darkFraction(gray *image.Gray, r image.Rectangle, threshold uint8) float64 {
	total := r.Dx() * r.Dy()
	if total == 0 {
		return 0
	}
	dark := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if gray.Pix[y*gray.Stride+x] < threshold {
				dark++
			}
		}
	}
	return float64(dark) / float64(total)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
