package build

// Stage describes a high-level build phase.
type Stage string

const (
	// StageBuild is the external compiler invocation.
	StageBuild Stage = "build"
	// StageAnalysis is artifact discovery and decoding.
	StageAnalysis Stage = "analysis"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusWorking indicates the stage is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for one stage transition.
type Event struct {
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

func emit(sink ProgressSink, stage Stage, status Status, err error) {
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err})
}
