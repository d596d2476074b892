package player

// State is the playback state surfaced to the session controller. It mirrors
// the subset of widget states the controller cares about; everything else the
// underlying player reports is ignored.
type State int

const (
	StateUnstarted State = iota
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
