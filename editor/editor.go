package editor

import (
	"path/filepath"
	"time"

	"sourcetrace/activity"
	"sourcetrace/config"
	"sourcetrace/document"
	"sourcetrace/export"
	"sourcetrace/questions"
	"sourcetrace/refstore"
	"sourcetrace/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *zap.Logger

	doc     *document.Document
	refs    *refstore.Store
	paste   *PasteController
	tracker *activity.Tracker
	sampler *activity.Sampler
	events  *export.EventLog
	qclient *questions.Client

	sidebar   *ui.Sidebar
	statusBar *ui.StatusBar
	dialog    *ui.Dialog

	scrollY   int
	layout    *layoutCache
	selAnchor *document.Pos

	quit bool

	// Bracketed paste accumulation
	pasting  bool
	pasteBuf []rune

	// Question generation re-entrancy guard. The generation counter
	// lets the loop discard responses from a superseded request.
	generating  bool
	questionGen uint64

	// Cursor blinking
	cursorVisible bool
	lastBlinkTime time.Time

	// Temporary status messages
	statusMessageTime time.Time

	configWatcher *fsnotify.Watcher
}

// QuestionsEvent carries a finished generation back to the event loop.
type QuestionsEvent struct {
	tcell.EventTime
	Gen       uint64
	Questions []questions.Question
	Err       error
}

// ConfigEvent signals that the settings file changed on disk.
type ConfigEvent struct {
	tcell.EventTime
}

func New(cfg *config.Config, log *zap.Logger) *Editor {
	doc := document.New()
	refs := refstore.New()
	tracker := activity.NewTracker()
	interval := time.Duration(cfg.SampleIntervalMS) * time.Millisecond
	e := &Editor{
		cfg:       cfg,
		log:       log,
		doc:       doc,
		refs:      refs,
		paste:     NewPasteController(doc, refs),
		tracker:   tracker,
		sampler:   activity.NewSampler(tracker, interval),
		events:    export.NewEventLog(),
		qclient:   questions.NewClient(cfg.QuestionService),
		sidebar:   ui.NewSidebar(),
		statusBar: ui.NewStatusBar(),
	}
	e.sidebar.OnRemove = func(id string) { e.removeReference(id) }
	return e
}

func (e *Editor) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	e.screen = screen

	theme := e.cfg.GetTheme()
	e.sidebar.Theme = theme
	e.statusBar.Theme = theme

	if e.cfg.PersistSession && e.RestoreSession() {
		e.log.Info("session restored",
			zap.Int("chars", e.doc.CharCount()),
			zap.Int("refs", e.refs.Len()))
	}
	e.refreshSidebar()
	e.updateStatus()

	e.setupConfigWatcher(screen)
	e.sampler.Start()

	e.cursorVisible = true
	e.lastBlinkTime = time.Now()
	blinkInterval := 500 * time.Millisecond

	for !e.quit {
		e.clearExpiredMessages()

		e.render()

		ev := screen.PollEvent()

		if time.Since(e.lastBlinkTime) >= blinkInterval {
			e.cursorVisible = !e.cursorVisible
			e.lastBlinkTime = time.Now()
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *tcell.EventPaste:
			e.handlePasteEvent(ev)
		case *QuestionsEvent:
			e.handleQuestionsEvent(ev)
		case *ConfigEvent:
			e.reloadConfig()
		}
	}

	// A pending paste behaves like a cancel when the editor closes.
	e.paste.Cancel()

	if e.cfg.PersistSession {
		e.SaveSession()
	}
	e.sampler.Stop()
	e.saveExitArtifacts()
	if e.configWatcher != nil {
		e.configWatcher.Close()
	}

	e.log.Info("editor closed",
		zap.Int("chars", e.doc.CharCount()),
		zap.Int("refs", e.refs.Len()),
		zap.Int64("keystrokes", e.tracker.Keystrokes()),
		zap.Int64("deletions", e.tracker.Deletions()))

	screen.Clear()
	screen.Fini()

	return nil
}

// afterChange runs the consistency pass after every document mutation:
// the tracker observes the new character count and the store drops any
// reference whose span was edited away.
func (e *Editor) afterChange(kind activity.OpKind) {
	count := e.doc.CharCount()
	e.tracker.Observe(count, kind)

	if dropped := e.refs.Reconcile(e.doc.SpanIDs()); dropped > 0 {
		e.log.Info("references dropped with their spans", zap.Int("count", dropped))
		e.refreshSidebar()
	}

	e.events.Change(e.doc.PlainText())
	e.layout = nil
	e.updateStatus()
}

func (e *Editor) refreshSidebar() {
	e.sidebar.Refs = e.refs.List()
}

func (e *Editor) updateStatus() {
	e.statusBar.Chars = e.doc.CharCount()
	e.statusBar.Words = wordCount(e.doc.PlainText())
	e.statusBar.Refs = e.refs.Len()
	e.statusBar.Keystrokes = e.tracker.Keystrokes()
	e.statusBar.Deletions = e.tracker.Deletions()
	if e.paste.Active() {
		e.statusBar.Mode = "CITE"
	} else {
		e.statusBar.Mode = "WRITE"
	}
}

// setTemporaryMessage sets a status message that auto-clears after 5 seconds.
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusMessageTime = time.Time{}
	}
}

func (e *Editor) setupConfigWatcher(screen tcell.Screen) {
	path := config.ConfigPath()
	if path == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		return
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return
	}
	e.configWatcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				ev := &ConfigEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (e *Editor) reloadConfig() {
	cfg, err := config.Load()
	if err != nil {
		e.log.Warn("config reload failed", zap.Error(err))
		return
	}
	e.cfg = cfg
	theme := cfg.GetTheme()
	e.sidebar.Theme = theme
	e.statusBar.Theme = theme
	if e.dialog != nil {
		e.dialog.Theme = theme
	}
	e.layout = nil
	e.setTemporaryMessage("Settings reloaded")
	e.log.Info("config reloaded", zap.String("theme", cfg.Theme))
}

func (e *Editor) handleQuestionsEvent(ev *QuestionsEvent) {
	if ev.Gen != e.questionGen {
		// A newer request superseded this one.
		return
	}
	e.generating = false
	e.sidebar.Loading = false
	if ev.Err != nil {
		e.sidebar.LastError = ev.Err.Error()
		e.setTemporaryMessage("Question generation failed")
		e.log.Warn("question generation failed", zap.Error(ev.Err))
		return
	}
	e.sidebar.LastError = ""
	e.sidebar.Questions = ev.Questions
	e.log.Info("questions generated", zap.Int("count", len(ev.Questions)))
}

func wordCount(s string) int {
	count := 0
	inWord := false
	for _, ch := range s {
		if ch == ' ' || ch == '\n' || ch == '\t' || ch == ' ' {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}
