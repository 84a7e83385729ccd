package heatshrink

// SinkStatus is the result of a Sink call.
type SinkStatus uint8

const (
	SinkOK SinkStatus = iota
	SinkFull
	SinkMisuse
)

func (s SinkStatus) String() string {
	switch s {
	case SinkOK:
		return "Ok"
	case SinkFull:
		return "Full"
	case SinkMisuse:
		return "Misuse"
	default:
		return "Unknown"
	}
}

// PollStatus is the result of a Poll call.
type PollStatus uint8

const (
	PollEmpty PollStatus = iota
	PollMore
	PollUnknownState
	PollMisuse
)

func (s PollStatus) String() string {
	switch s {
	case PollEmpty:
		return "Empty"
	case PollMore:
		return "More"
	case PollUnknownState:
		return "UnknownState"
	case PollMisuse:
		return "Misuse"
	default:
		return "Unknown"
	}
}

// FinishStatus is the result of a Finish call.
type FinishStatus uint8

const (
	FinishDone FinishStatus = iota
	FinishMore
)

func (s FinishStatus) String() string {
	switch s {
	case FinishDone:
		return "Done"
	case FinishMore:
		return "More"
	default:
		return "Unknown"
	}
}
