package dirty

import (
	"sync"

	"github.com/dshills/mousemark/internal/mark"
)

// Tracker tracks dirty regions and coalesces them for efficient rendering.
// It implements mark.Damager.
type Tracker struct {
	mu sync.RWMutex

	// regions contains the current dirty regions.
	regions []Region

	// fullRedraw indicates the entire screen needs redrawing.
	fullRedraw bool

	// maxRegions is the maximum number of regions before coalescing.
	maxRegions int

	screenWidth  float64
	screenHeight float64

	// coalesceThreshold is the fraction of the screen that triggers full redraw.
	coalesceThreshold float64
}

var _ mark.Damager = (*Tracker)(nil)

// NewTracker creates a new dirty region tracker.
// Negative dimensions are treated as zero.
func NewTracker(screenWidth, screenHeight int) *Tracker {
	return &Tracker{
		regions:           make([]Region, 0, 16),
		maxRegions:        32,
		screenWidth:       float64(max(screenWidth, 0)),
		screenHeight:      float64(max(screenHeight, 0)),
		coalesceThreshold: 0.5, // 50% of screen = full redraw
	}
}

// SetScreenSize updates the screen dimensions and forces a full redraw.
// Negative dimensions are treated as zero.
func (t *Tracker) SetScreenSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screenWidth = float64(max(width, 0))
	t.screenHeight = float64(max(height, 0))
	t.fullRedraw = true
	t.regions = t.regions[:0]
}

// ScreenSize returns the current screen dimensions.
func (t *Tracker) ScreenSize() (width, height int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int(t.screenWidth), int(t.screenHeight)
}

// AddRepaintFull marks the entire screen as needing redraw.
func (t *Tracker) AddRepaintFull() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fullRedraw = true
	t.regions = t.regions[:0]
}

// AddRepaint marks a rectangle as dirty.
func (t *Tracker) AddRepaint(r mark.Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fullRedraw {
		return
	}
	t.addRegion(Region{r})
}

// addRegion adds a region and coalesces with existing regions.
func (t *Tracker) addRegion(region Region) {
	region = region.Clip(t.screenWidth, t.screenHeight)
	if region.IsEmpty() {
		return
	}

	for i := range t.regions {
		if merged, ok := t.regions[i].Merge(region); ok {
			t.regions[i] = merged
			t.coalesceRegions()
			t.checkThreshold()
			return
		}
	}

	t.regions = append(t.regions, region)

	if len(t.regions) > t.maxRegions {
		t.collapse()
	}
	t.checkThreshold()
}

// coalesceRegions merges overlapping or adjacent regions.
func (t *Tracker) coalesceRegions() {
	if len(t.regions) <= 1 {
		return
	}

	// Simple O(n²) merge - acceptable for small region counts
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(t.regions); i++ {
			for j := i + 1; j < len(t.regions); j++ {
				if merged, ok := t.regions[i].Merge(t.regions[j]); ok {
					t.regions[i] = merged
					t.regions = append(t.regions[:j], t.regions[j+1:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
	}
}

// collapse replaces all regions by their bounding box.
func (t *Tracker) collapse() {
	var bounds mark.Rect
	for _, r := range t.regions {
		bounds = bounds.Union(r.Rect)
	}
	t.regions = append(t.regions[:0], Region{bounds})
}

func (t *Tracker) checkThreshold() {
	if t.dirtyAreaRatio() > t.coalesceThreshold {
		t.fullRedraw = true
		t.regions = t.regions[:0]
	}
}

// dirtyAreaRatio returns the ratio of dirty area to total screen area.
// Overlap between regions is counted twice, which only errs toward a full
// redraw.
func (t *Tracker) dirtyAreaRatio() float64 {
	total := t.screenWidth * t.screenHeight
	if total == 0 {
		return 0
	}
	var dirty float64
	for _, r := range t.regions {
		dirty += r.Area()
	}
	return dirty / total
}

// IsDirty returns true if anything needs repainting.
func (t *Tracker) IsDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.fullRedraw || len(t.regions) > 0
}

// NeedsFullRedraw returns true if a full redraw is needed.
func (t *Tracker) NeedsFullRedraw() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.fullRedraw
}

// DirtyRegions returns a copy of the current dirty regions.
// If full redraw is needed, returns a single region covering the screen.
func (t *Tracker) DirtyRegions() []Region {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.fullRedraw {
		if t.screenWidth == 0 || t.screenHeight == 0 {
			return []Region{}
		}
		return []Region{NewRegion(0, 0, t.screenWidth, t.screenHeight)}
	}

	result := make([]Region, len(t.regions))
	copy(result, t.regions)
	return result
}

// Take returns the dirty regions and clears the tracker in one step.
func (t *Tracker) Take() (regions []Region, full bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	full = t.fullRedraw
	if !full {
		regions = make([]Region, len(t.regions))
		copy(regions, t.regions)
	}
	t.regions = t.regions[:0]
	t.fullRedraw = false
	return regions, full
}

// Clear clears all dirty regions.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.regions = t.regions[:0]
	t.fullRedraw = false
}

// SetMaxRegions sets the maximum number of regions before they collapse
// into their bounding box. Values less than 1 are clamped to 1.
func (t *Tracker) SetMaxRegions(maxRegs int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.maxRegions = max(maxRegs, 1)
}

// SetCoalesceThreshold sets the dirty area threshold for triggering full redraw.
func (t *Tracker) SetCoalesceThreshold(threshold float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.coalesceThreshold = min(max(threshold, 0), 1)
}

// Stats returns statistics about the tracker state.
func (t *Tracker) Stats() TrackerStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return TrackerStats{
		RegionCount:   len(t.regions),
		FullRedraw:    t.fullRedraw,
		DirtyRatio:    t.dirtyAreaRatio(),
		MaxRegions:    t.maxRegions,
		CoalThreshold: t.coalesceThreshold,
	}
}

// TrackerStats contains statistics about the tracker state.
type TrackerStats struct {
	RegionCount   int
	FullRedraw    bool
	DirtyRatio    float64
	MaxRegions    int
	CoalThreshold float64
}
