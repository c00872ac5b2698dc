// Package workflow runs the daily pipeline: topics, then one video per topic
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/history"
	"github.com/gnzdotmx/dailyshorts/internal/modules/assemble"
	"github.com/gnzdotmx/dailyshorts/internal/modules/publish"
	"github.com/gnzdotmx/dailyshorts/internal/modules/script"
	"github.com/gnzdotmx/dailyshorts/internal/modules/topics"
)

// Stage collaborators

// TopicSource produces the day's topics
type TopicSource interface {
	Generate(ctx context.Context, n int, recent []string) ([]topics.Topic, error)
}

// ScriptWriter turns a topic into a video script
type ScriptWriter interface {
	Generate(ctx context.Context, topic topics.Topic) (*script.Script, error)
}

// ClipFinder resolves search terms to stock clip links
type ClipFinder interface {
	Find(ctx context.Context, terms []string) ([]string, error)
}

// VideoAssembler renders the final video
type VideoAssembler interface {
	Assemble(ctx context.Context, req assemble.Request) (*assemble.Result, error)
}

// Publisher uploads a finished video
type Publisher interface {
	Publish(ctx context.Context, videoPath string, s *script.Script) (publish.Result, error)
}

// HistoryStore keeps published subjects across runs
type HistoryStore interface {
	Record(ctx context.Context, v *history.Video) error
	RecentSubjects(ctx context.Context, since time.Time) ([]string, error)
}

// State-related types

// ItemStatus is the position of one video in its state machine
type ItemStatus string

const (
	ItemStatusStart       ItemStatus = "start"
	ItemStatusScriptReady ItemStatus = "script_ready"
	ItemStatusClipsReady  ItemStatus = "clips_ready"
	ItemStatusAssembled   ItemStatus = "assembled"
	ItemStatusUploaded    ItemStatus = "uploaded"
	ItemStatusFailed      ItemStatus = "failed"
)

// RunStatus represents the outcome of the whole run
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Item is one topic on its way to a published video
type Item struct {
	Index       int           `yaml:"index"`
	Subject     string        `yaml:"subject"`
	Category    string        `yaml:"category"`
	Status      ItemStatus    `yaml:"status"`
	Title       string        `yaml:"title,omitempty"`
	VideoPath   string        `yaml:"videoPath,omitempty"`
	SizeMB      float64       `yaml:"sizeMB,omitempty"`
	Clips       int           `yaml:"clips,omitempty"`
	Music       string        `yaml:"music,omitempty"`
	Overlaid    bool          `yaml:"overlaid,omitempty"`
	VideoID     string        `yaml:"videoId,omitempty"`
	URL         string        `yaml:"url,omitempty"`
	Error       string        `yaml:"error,omitempty"`
	FailureKind string        `yaml:"failureKind,omitempty"`
	Duration    time.Duration `yaml:"duration"`
}

// Done reports whether the item reached its terminal success state
func (i *Item) Done(dryRun bool) bool {
	if dryRun {
		return i.Status == ItemStatusAssembled
	}
	return i.Status == ItemStatusUploaded
}

// RunEvent represents an event that occurred during the run
type RunEvent struct {
	ID        string     `yaml:"id"`
	Timestamp time.Time  `yaml:"timestamp"`
	Item      int        `yaml:"item"`
	Status    ItemStatus `yaml:"status"`
	Message   string     `yaml:"message"`
}

// RunState represents the current state of a run
type RunState struct {
	sync.RWMutex `yaml:"-"`

	ID        string     `yaml:"id"`
	Dir       string     `yaml:"dir"`
	DryRun    bool       `yaml:"dryRun"`
	StartTime time.Time  `yaml:"startTime"`
	EndTime   time.Time  `yaml:"endTime"`
	Status    RunStatus  `yaml:"status"`
	Items     []*Item    `yaml:"items"`
	History   []RunEvent `yaml:"history"`
}
