package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/config"
	"github.com/gnzdotmx/dailyshorts/internal/history"
	"github.com/gnzdotmx/dailyshorts/internal/metrics"
	"github.com/gnzdotmx/dailyshorts/internal/modules/assemble"
	"github.com/gnzdotmx/dailyshorts/internal/modules/script"
	"github.com/gnzdotmx/dailyshorts/internal/modules/topics"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/google/uuid"
)

// RunDirLayout names run directories; cleanup parses the same layout
const RunDirLayout = "20060102-150405"

// Stage names used for metrics and logs
const (
	stageTopics   = "topics"
	stageScript   = "script"
	stageClips    = "clips"
	stageAssemble = "assemble"
	stageUpload   = "upload"
)

// ErrAllFailed is returned when no video of the run succeeded
var ErrAllFailed = errors.New("all videos failed")

// Dependencies are the stage collaborators of a pipeline.
// Publisher may be nil for dry runs, History may be nil to run without a store.
type Dependencies struct {
	Topics    TopicSource
	Scripts   ScriptWriter
	Clips     ClipFinder
	Assembler VideoAssembler
	Publisher Publisher
	History   HistoryStore
	Metrics   *metrics.Recorder
}

// Options control a single run
type Options struct {
	Count  int
	DryRun bool
}

// Pipeline runs topics -> script -> clips -> assemble -> upload for each video
type Pipeline struct {
	cfg  *config.Config
	deps Dependencies

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// New creates a pipeline for the given profile
func New(cfg *config.Config, deps Dependencies) *Pipeline {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRecorder()
	}
	return &Pipeline{
		cfg:   cfg,
		deps:  deps,
		sleep: utils.Sleep,
		now:   time.Now,
	}
}

// Run executes the pipeline. It returns the run state even on error; the
// error is non-nil when topics could not be generated or every video failed.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*RunState, error) {
	count := opts.Count
	if count <= 0 {
		count = p.cfg.VideosPerRun
	}
	if !opts.DryRun && p.deps.Publisher == nil {
		return nil, fmt.Errorf("no publisher configured")
	}

	start := p.now()
	state := &RunState{
		ID:        uuid.New().String(),
		Dir:       filepath.Join(p.cfg.Pipeline.OutputDir, start.Format(RunDirLayout)),
		DryRun:    opts.DryRun,
		StartTime: start,
		Status:    RunStatusRunning,
	}
	if err := utils.ValidateOutputPath(state.Dir); err != nil {
		return nil, err
	}

	utils.LogInfo("%s", utils.Rule("=", 55))
	utils.LogInfo("Video pipeline start %s (run %s)", start.Format("02.01.2006 15:04"), state.ID)
	utils.LogInfo("%s", utils.Rule("=", 55))

	utils.LogInfo("[1/4] Generating %d topics...", count)
	recent := p.recentSubjects(ctx, start)
	var list []topics.Topic
	err := p.stage(stageTopics, func() error {
		var err error
		list, err = p.deps.Topics.Generate(ctx, count, recent)
		return err
	})
	if err != nil {
		state.Status = RunStatusFailed
		state.EndTime = p.now()
		p.finish(state)
		return state, fmt.Errorf("topic generation failed: %w", err)
	}
	for i, topic := range list {
		utils.LogInfo("  #%d: %s (%s)", i+1, topic.Subject, topic.Category)
		state.Items = append(state.Items, &Item{
			Index:    i + 1,
			Subject:  topic.Subject,
			Category: topic.Category,
			Status:   ItemStatusStart,
		})
	}

	for i, topic := range list {
		item := state.Items[i]
		utils.LogInfo("%s", utils.Rule("-", 55))
		utils.LogInfo("Video %d/%d: %s", item.Index, len(list), topic.Subject)
		utils.LogInfo("%s", utils.Rule("-", 55))

		itemStart := time.Now()
		if err := p.processItem(ctx, state, item, topic, opts.DryRun); err != nil {
			state.Fail(item, utils.FailureKind(err), err)
			utils.LogError("Video %d failed: %v", item.Index, err)
		}
		item.Duration = time.Since(itemStart).Round(time.Millisecond)
		p.recordOutcome(ctx, state, item)

		if i < len(list)-1 {
			utils.LogInfo("Waiting %s before the next video...", p.cfg.Pipeline.Delay)
			if err := p.sleep(ctx, p.cfg.Pipeline.Delay); err != nil {
				for _, rest := range state.Items[i+1:] {
					state.Fail(rest, utils.FailureKind(err), fmt.Errorf("run interrupted: %w", err))
					p.recordOutcome(ctx, state, rest)
				}
				break
			}
		}
	}

	state.EndTime = p.now()
	ok := state.Succeeded()
	if ok > 0 {
		state.Status = RunStatusComplete
		if !opts.DryRun {
			p.deps.Metrics.RunSucceeded(state.EndTime)
		}
	} else {
		state.Status = RunStatusFailed
	}
	p.printSummary(state)
	p.finish(state)

	if ok == 0 {
		return state, fmt.Errorf("%w (%d videos)", ErrAllFailed, len(state.Items))
	}
	return state, nil
}

// processItem drives one item through its states; the returned error fails the item
func (p *Pipeline) processItem(ctx context.Context, state *RunState, item *Item, topic topics.Topic, dryRun bool) error {
	utils.LogInfo("  [2a] Writing script...")
	var s *script.Script
	if err := p.stage(stageScript, func() error {
		var err error
		s, err = p.deps.Scripts.Generate(ctx, topic)
		return err
	}); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	item.Title = s.Title
	state.Advance(item, ItemStatusScriptReady, s.Title)
	utils.LogInfo("  ✓ Title: %s", s.Title)

	utils.LogInfo("  [2b] Searching stock clips...")
	var links []string
	if err := p.stage(stageClips, func() error {
		var err error
		links, err = p.deps.Clips.Find(ctx, s.SearchTerms)
		return err
	}); err != nil {
		return fmt.Errorf("clips: %w", err)
	}
	state.Advance(item, ItemStatusClipsReady, fmt.Sprintf("%d clips found", len(links)))
	utils.LogInfo("  ✓ %d clips found", len(links))

	utils.LogInfo("  [3]  Assembling video...")
	var built *assemble.Result
	if err := p.stage(stageAssemble, func() error {
		var err error
		built, err = p.deps.Assembler.Assemble(ctx, assemble.Request{
			Title:     s.Title,
			Narration: s.Narration,
			ClipURLs:  links,
			Output:    filepath.Join(state.Dir, fmt.Sprintf("video_%d.mp4", item.Index)),
		})
		return err
	}); err != nil {
		return fmt.Errorf("assemble: %w", err)
	}
	item.VideoPath = built.Path
	item.Music = string(built.Music.Source)
	item.Overlaid = built.Overlay.Overlaid
	for _, clip := range built.Clips {
		if clip.Err == nil {
			item.Clips++
		}
	}
	if size, err := utils.FileSizeMB(built.Path); err == nil {
		item.SizeMB = size
	}
	state.Advance(item, ItemStatusAssembled, built.Path)
	utils.LogInfo("  ✓ Video ready (%.1f MB)", item.SizeMB)

	if dryRun {
		utils.LogInfo("  [4]  Dry run, skipping upload")
		return nil
	}

	utils.LogInfo("  [4]  Uploading to YouTube Shorts...")
	if err := p.stage(stageUpload, func() error {
		res, err := p.deps.Publisher.Publish(ctx, built.Path, s)
		if err != nil {
			return err
		}
		item.VideoID = res.VideoID
		item.URL = res.URL
		return nil
	}); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	state.Advance(item, ItemStatusUploaded, item.URL)
	utils.LogSuccess("  ✓ Uploaded: %s", item.URL)
	return nil
}

// stage times fn under the given stage label
func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.deps.Metrics.ObserveStage(name, time.Since(start))
	return err
}

// recentSubjects reads the subjects published within the configured window
func (p *Pipeline) recentSubjects(ctx context.Context, now time.Time) []string {
	if p.deps.History == nil || p.cfg.Pipeline.RecentDays <= 0 {
		return nil
	}
	since := now.AddDate(0, 0, -p.cfg.Pipeline.RecentDays)
	subjects, err := p.deps.History.RecentSubjects(ctx, since)
	if err != nil {
		utils.LogWarning("Failed to read recent topics: %v", err)
		return nil
	}
	utils.LogVerbose("%d topics published in the last %d days", len(subjects), p.cfg.Pipeline.RecentDays)
	return subjects
}

// recordOutcome stores the final item status in the history store and metrics
func (p *Pipeline) recordOutcome(ctx context.Context, state *RunState, item *Item) {
	status := history.StatusFailed
	switch {
	case item.Status == ItemStatusUploaded:
		status = history.StatusUploaded
	case state.DryRun && item.Status == ItemStatusAssembled:
		status = history.StatusDryRun
	}
	p.deps.Metrics.VideoFinished(status)

	if p.deps.History == nil {
		return
	}
	err := p.deps.History.Record(context.WithoutCancel(ctx), &history.Video{
		RunID:    state.ID,
		Subject:  item.Subject,
		Category: item.Category,
		Title:    item.Title,
		VideoID:  item.VideoID,
		URL:      item.URL,
		Status:   status,
		Error:    item.Error,
	})
	if err != nil {
		utils.LogWarning("Failed to record video %d in history: %v", item.Index, err)
	}
}

// printSummary logs one line per video with its URL or error
func (p *Pipeline) printSummary(state *RunState) {
	utils.LogInfo("%s", utils.Rule("=", 55))
	utils.LogInfo("Result")
	utils.LogInfo("%s", utils.Rule("=", 55))
	utils.LogInfo("Successful: %d/%d", state.Succeeded(), len(state.Items))
	for _, item := range state.Items {
		title := item.Title
		if title == "" {
			title = item.Subject
		}
		switch {
		case item.Done(state.DryRun) && item.URL != "":
			utils.LogSuccess("  ✓ %s", title)
			utils.LogInfo("     → %s", item.URL)
		case item.Done(state.DryRun):
			utils.LogSuccess("  ✓ %s", title)
			utils.LogInfo("     → %s", item.VideoPath)
		default:
			utils.LogError("  ✗ %s", title)
			utils.LogInfo("     → %s", firstLine(item.Error))
		}
	}
}

// finish saves the run state and pushes metrics; failures are only logged
func (p *Pipeline) finish(state *RunState) {
	if err := state.Save(filepath.Join(state.Dir, StateFileName)); err != nil {
		utils.LogWarning("Failed to save run state: %v", err)
	}
	if err := p.deps.Metrics.Push(p.cfg.Metrics.PushgatewayURL, p.cfg.Metrics.Job); err != nil {
		utils.LogWarning("%v", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
