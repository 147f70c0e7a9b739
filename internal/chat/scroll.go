package chat

// ScrollThreshold is how close to the end of the feed (in lines) the
// viewport must be for the tracker to consider the user "near bottom".
const ScrollThreshold = 4

// ScrollTracker decides, on every content change or scroll event,
// whether the feed should auto-scroll to the newest message or surface
// a manual jump-to-bottom affordance. It never blocks sending or
// receiving; it only affects presentation.
type ScrollTracker struct {
	NearBottom     bool
	ShowJumpButton bool
}

// NewScrollTracker returns a tracker in its initial state
func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{NearBottom: true}
}

// OnScroll updates the state from a raw scroll event. offset is the
// first visible line, viewportHeight the number of visible lines, and
// contentHeight the total line count of the feed.
func (t *ScrollTracker) OnScroll(offset, viewportHeight, contentHeight int) {
	distanceFromBottom := contentHeight - (offset + viewportHeight)
	t.NearBottom = distanceFromBottom <= ScrollThreshold
	t.ShowJumpButton = !t.NearBottom && contentHeight > viewportHeight
}

// OnContentGrown reports whether the feed should auto-scroll after new
// content arrives. Auto-scroll happens only when the user was near the
// bottom immediately before the growth; its side effect mirrors an
// explicit jump.
func (t *ScrollTracker) OnContentGrown() bool {
	if !t.NearBottom {
		return false
	}
	t.JumpToBottom()
	return true
}

// JumpToBottom applies the scroll-to-end side effect
func (t *ScrollTracker) JumpToBottom() {
	t.NearBottom = true
	t.ShowJumpButton = false
}

// Reset restores the initial state (used by clear-chat)
func (t *ScrollTracker) Reset() {
	t.NearBottom = true
	t.ShowJumpButton = false
}
