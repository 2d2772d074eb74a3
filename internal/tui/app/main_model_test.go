package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/scheduler"
)

// fakeBackend запоминает вызовы вместо воспроизведения
type fakeBackend struct {
	played   []string
	playErr  error
	pauseErr error
	paused   bool
	stopped  bool
	closed   bool
	finished chan string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{finished: make(chan string, 1)}
}

func (b *fakeBackend) Play(path string) error {
	if b.playErr != nil {
		return b.playErr
	}
	b.played = append(b.played, path)
	return nil
}

func (b *fakeBackend) Pause() error {
	if b.pauseErr != nil {
		return b.pauseErr
	}
	b.paused = true
	return nil
}

func (b *fakeBackend) Resume() error {
	if b.pauseErr != nil {
		return b.pauseErr
	}
	b.paused = false
	return nil
}

func (b *fakeBackend) Stop() error {
	b.stopped = true
	return nil
}

func (b *fakeBackend) Close() error {
	if !b.closed {
		b.closed = true
		close(b.finished)
	}
	return nil
}

func (b *fakeBackend) Finished() <-chan string {
	return b.finished
}

type fakeLister struct {
	entries []string
	err     error
}

func (l *fakeLister) ListEntries(_ string) ([]string, error) {
	return l.entries, l.err
}

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(backend *fakeBackend, entries ...string) *MainModel {
	var model *MainModel
	state := data.NewAppState("/music")
	if backend == nil {
		model = NewMainModel(state, nil, &fakeLister{entries: entries}, DefaultOptions())
	} else {
		model = NewMainModel(state, backend, &fakeLister{entries: entries}, DefaultOptions())
	}
	model.now = func() time.Time { return start }
	model.labeler = func(path string) string { return "label:" + path }
	return model
}

// startedModel проводит модель через Init и оба запланированных тика
func startedModel(t *testing.T, backend *fakeBackend, entries ...string) *MainModel {
	t.Helper()
	model := newTestModel(backend, entries...)
	model.Init()
	model.Update(tickMsg(start.Add(250 * time.Millisecond)))
	model.Update(tickMsg(start.Add(500 * time.Millisecond)))
	return model
}

func press(model *MainModel, msg tea.KeyMsg) tea.Cmd {
	_, cmd := model.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selected(model *MainModel) string {
	entry, _ := model.state.Library.Selected()
	return entry
}

func TestInitArmsTasks(t *testing.T) {
	model := newTestModel(newFakeBackend())
	if cmd := model.Init(); cmd == nil {
		t.Fatal("Init должен вернуть команду")
	}

	setup, ok := model.runner.Task(scheduler.SetupTask)
	if !ok || !setup.Deadline.Equal(start.Add(250*time.Millisecond)) {
		t.Errorf("Неожиданный срок задачи установки: %v", setup.Deadline)
	}

	rescan, ok := model.runner.Task(scheduler.RescanTask)
	if !ok || !rescan.Deadline.Equal(start.Add(500*time.Millisecond)) {
		t.Errorf("Неожиданный срок задачи сканирования: %v", rescan.Deadline)
	}
}

func TestScheduledTasks(t *testing.T) {
	model := newTestModel(newFakeBackend(), "a.mp3", "b.mp3")
	model.Init()

	// До срока ничего не происходит
	model.Update(tickMsg(start.Add(100 * time.Millisecond)))
	if _, ok := model.state.Library.Cursor(); ok {
		t.Error("Курсор не должен устанавливаться до срока задачи")
	}

	// Задача установки ставит курсор на временную запись
	model.Update(tickMsg(start.Add(250 * time.Millisecond)))
	if selected(model) != data.ProcessingEntry {
		t.Errorf("Ожидалась временная запись, получено %q", selected(model))
	}

	// Сканирование заменяет список и ставит курсор на первый трек
	model.Update(tickMsg(start.Add(500 * time.Millisecond)))
	if model.state.Library.Len() != 2 {
		t.Fatalf("Ожидалось 2 трека, получено %d", model.state.Library.Len())
	}
	if selected(model) != "a.mp3" {
		t.Errorf("Ожидался a.mp3, получено %q", selected(model))
	}

	// Задачи уходят в спящий режим
	rescan, _ := model.runner.Task(scheduler.RescanTask)
	expected := start.Add(500*time.Millisecond + time.Hour)
	if !rescan.Deadline.Equal(expected) {
		t.Errorf("Ожидался следующий срок %v, получено %v", expected, rescan.Deadline)
	}
}

func TestPeriodicRescan(t *testing.T) {
	state := data.NewAppState("/music")
	opts := DefaultOptions()
	opts.RescanInterval = 30 * time.Second
	model := NewMainModel(state, newFakeBackend(), &fakeLister{entries: []string{"a.mp3"}}, opts)
	model.now = func() time.Time { return start }
	model.Init()

	fireAt := start.Add(500 * time.Millisecond)
	model.Update(tickMsg(fireAt))

	rescan, _ := model.runner.Task(scheduler.RescanTask)
	if !rescan.Deadline.Equal(fireAt.Add(30 * time.Second)) {
		t.Errorf("Ожидался срок через 30s, получено %v", rescan.Deadline)
	}
}

func TestNavigationKeys(t *testing.T) {
	model := startedModel(t, newFakeBackend(), "a.mp3", "b.mp3", "c.mp3")

	press(model, tea.KeyMsg{Type: tea.KeyDown})
	if selected(model) != "b.mp3" {
		t.Errorf("Ожидался b.mp3, получено %q", selected(model))
	}

	press(model, runes("j"))
	press(model, runes("j"))
	if selected(model) != "a.mp3" {
		t.Errorf("После последнего трека ожидался перенос на a.mp3, получено %q", selected(model))
	}

	press(model, tea.KeyMsg{Type: tea.KeyUp})
	if selected(model) != "c.mp3" {
		t.Errorf("Вверх с первого трека ожидался c.mp3, получено %q", selected(model))
	}

	press(model, runes("k"))
	if selected(model) != "b.mp3" {
		t.Errorf("Ожидался b.mp3, получено %q", selected(model))
	}
}

func TestUnknownKeyIsNoop(t *testing.T) {
	model := startedModel(t, newFakeBackend(), "a.mp3")

	if cmd := press(model, runes("x")); cmd != nil {
		t.Error("Неизвестная клавиша не должна возвращать команду")
	}
	if selected(model) != "a.mp3" || model.state.Paused {
		t.Error("Неизвестная клавиша не должна менять состояние")
	}
}

func TestPlayConfirmedByBackend(t *testing.T) {
	backend := newFakeBackend()
	model := startedModel(t, backend, "a.mp3", "b.mp3")
	press(model, runes("j"))

	cmd := press(model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter должен вернуть команду воспроизведения")
	}
	if model.state.NowPlaying != data.NothingPlaying {
		t.Error("NowPlaying не должен меняться до подтверждения от бэкенда")
	}

	msg := cmd()
	if _, ok := msg.(playbackStartedMsg); !ok {
		t.Fatalf("Ожидалось playbackStartedMsg, получено %T", msg)
	}
	model.Update(msg)

	if len(backend.played) != 1 || backend.played[0] != "/music/b.mp3" {
		t.Errorf("Неожиданные вызовы Play: %v", backend.played)
	}
	if model.state.NowPlaying != "label:/music/b.mp3" {
		t.Errorf("Неожиданная подпись трека: %q", model.state.NowPlaying)
	}
	if model.state.Library.Len() != 2 {
		t.Error("Трек не должен удаляться из списка")
	}
}

func TestPlayFailureLeavesState(t *testing.T) {
	backend := newFakeBackend()
	backend.playErr = errors.New("decode failed")
	model := startedModel(t, backend, "a.mp3")

	cmd := press(model, tea.KeyMsg{Type: tea.KeyEnter})
	model.Update(cmd())

	if model.state.NowPlaying != data.NothingPlaying {
		t.Errorf("NowPlaying не должен меняться, получено %q", model.state.NowPlaying)
	}
	if !model.state.StatusIsError || !strings.Contains(model.state.Status, "decode failed") {
		t.Errorf("Ожидалась ошибка в строке статуса, получено %q", model.state.Status)
	}
}

func TestPlayBeforeScanIsNoop(t *testing.T) {
	backend := newFakeBackend()
	model := newTestModel(backend, "a.mp3")
	model.Init()
	model.Update(tickMsg(start.Add(250 * time.Millisecond)))

	if cmd := press(model, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("Временная запись не должна воспроизводиться")
	}
	if len(backend.played) != 0 {
		t.Error("Бэкенд не должен вызываться")
	}
}

func TestPauseAndUnpause(t *testing.T) {
	backend := newFakeBackend()
	model := startedModel(t, backend, "a.mp3")

	press(model, runes("p"))
	if !model.state.Paused || !backend.paused {
		t.Error("После 'p' воспроизведение должно быть на паузе")
	}

	press(model, runes("o"))
	if model.state.Paused || backend.paused {
		t.Error("После 'o' воспроизведение должно продолжиться")
	}
}

func TestPauseBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.pauseErr = errors.New("device busy")
	model := startedModel(t, backend, "a.mp3")

	press(model, runes("p"))
	if model.state.Paused {
		t.Error("При ошибке бэкенда Paused не должен меняться")
	}
	if !model.state.StatusIsError {
		t.Error("Ошибка бэкенда должна попасть в строку статуса")
	}
}

func TestWithoutBackend(t *testing.T) {
	model := startedModel(t, nil, "a.mp3")

	if model.state.BackendReady {
		t.Error("Без бэкенда BackendReady должен быть false")
	}

	press(model, runes("p"))
	if model.state.Paused {
		t.Error("Без бэкенда пауза не должна меняться")
	}

	if cmd := press(model, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("Без бэкенда воспроизведение не запускается")
	}
	if !strings.Contains(model.state.Status, apperr.ErrBackendUnavailable.Error()) {
		t.Errorf("Ожидалось сообщение о недоступном бэкенде, получено %q", model.state.Status)
	}

	// Навигация продолжает работать
	press(model, tea.KeyMsg{Type: tea.KeyDown})
	if selected(model) != "a.mp3" {
		t.Errorf("Ожидался a.mp3, получено %q", selected(model))
	}
}

func TestQuit(t *testing.T) {
	backend := newFakeBackend()
	model := startedModel(t, backend, "a.mp3")

	cmd := press(model, runes("q"))
	if cmd == nil {
		t.Fatal("Ожидалась команда tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ожидалось сообщение tea.QuitMsg")
	}
	if !model.Quitting() {
		t.Error("Модель должна перейти в состояние выхода")
	}
	if !backend.stopped {
		t.Error("Плеер должен быть остановлен перед выходом")
	}
	if model.View() != "" {
		t.Error("После выхода интерфейс не отображается")
	}
}

func TestCtrlCQuits(t *testing.T) {
	model := startedModel(t, newFakeBackend(), "a.mp3")

	if cmd := press(model, tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("Ожидалась команда tea.Quit после Ctrl+C")
	}
}

func TestPlaybackFinished(t *testing.T) {
	backend := newFakeBackend()
	model := startedModel(t, backend, "a.mp3")
	model.Update(press(model, tea.KeyMsg{Type: tea.KeyEnter})())

	_, cmd := model.Update(playbackFinishedMsg{path: "/music/other.mp3"})
	if model.state.NowPlaying == data.NothingPlaying {
		t.Error("Сигнал о другом треке не должен сбрасывать текущий")
	}
	if cmd == nil {
		t.Error("После сигнала модель должна продолжать слушать канал")
	}

	model.Update(playbackFinishedMsg{path: "/music/a.mp3"})
	if model.state.NowPlaying != data.NothingPlaying {
		t.Errorf("Ожидалось %q, получено %q", data.NothingPlaying, model.state.NowPlaying)
	}
}

func TestListenFinished(t *testing.T) {
	backend := newFakeBackend()
	model := newTestModel(backend)

	backend.finished <- "/music/a.mp3"
	msg := model.listenFinished()()
	if finished, ok := msg.(playbackFinishedMsg); !ok || finished.path != "/music/a.mp3" {
		t.Errorf("Ожидалось playbackFinishedMsg, получено %#v", msg)
	}

	backend.Close()
	if msg := model.listenFinished()(); msg != nil {
		t.Errorf("После закрытия канала ожидался nil, получено %#v", msg)
	}
}

func TestDirChangedRearmsRescan(t *testing.T) {
	changes := make(chan struct{}, 1)
	model := startedModel(t, newFakeBackend(), "a.mp3")
	model.WatchChanges(changes)

	later := start.Add(10 * time.Second)
	model.now = func() time.Time { return later }

	_, cmd := model.Update(dirChangedMsg{})
	if cmd == nil {
		t.Error("После сигнала модель должна продолжать слушать наблюдателя")
	}

	rescan, _ := model.runner.Task(scheduler.RescanTask)
	if !rescan.Deadline.Equal(later.Add(300 * time.Millisecond)) {
		t.Errorf("Ожидался срок через debounce, получено %v", rescan.Deadline)
	}

	// Новый файл появляется в каталоге
	model.lister = &fakeLister{entries: []string{"a.mp3", "b.mp3"}}
	model.Update(tickMsg(later.Add(300 * time.Millisecond)))
	if model.state.Library.Len() != 2 {
		t.Errorf("После сканирования ожидалось 2 трека, получено %d", model.state.Library.Len())
	}
}

func TestRescanErrorKeepsLibrary(t *testing.T) {
	model := startedModel(t, newFakeBackend(), "a.mp3", "b.mp3")
	model.lister = &fakeLister{err: errors.New("permission denied")}

	model.runner.Arm(scheduler.RescanTask, start.Add(time.Second), 0)
	model.Update(tickMsg(start.Add(time.Second)))

	if model.state.Library.Len() != 2 {
		t.Errorf("Список должен сохраниться, получено %d", model.state.Library.Len())
	}
	if !model.state.StatusIsError {
		t.Error("Ошибка сканирования должна попасть в строку статуса")
	}
}

func TestView(t *testing.T) {
	model := startedModel(t, newFakeBackend(), "a.mp3", "b.mp3")
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := model.View()
	for _, want := range []string{"Songs", "Player Info", "Song: Nothing Playing", "Paused: false", "> a.mp3", "b.mp3"} {
		if !strings.Contains(view, want) {
			t.Errorf("Ожидалось %q в выводе:\n%s", want, view)
		}
	}
}

func TestClose(t *testing.T) {
	backend := newFakeBackend()
	model := newTestModel(backend)

	model.Close()
	if !backend.closed {
		t.Error("Close должен закрывать бэкенд")
	}
}
