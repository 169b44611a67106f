// Command keysim puts the input-processing core in the loop with a
// real keyboard, the way tcell's raw-mode TTY input path (tty.go,
// raw.go) drives its event loop from a real terminal. It reads raw
// bytes from the controlling TTY in cbreak mode, treats each byte as
// an instantaneous press-then-release of that byte's value as a
// Keypos, resolves it through a loaded keymap, and prints every
// Reporter call it produces except Flush.
//
// Reads happen on their own goroutine (a blocking tty.Read can't share
// a select loop), but every call into the executor - both for a key
// byte and for a fired timer - is serialized through one event loop
// goroutine, honoring the core's single-execution-context contract.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/term"

	mb "github.com/soycabanillas/monkeyboard-go"
	"github.com/soycabanillas/monkeyboard-go/config"
	"github.com/soycabanillas/monkeyboard-go/keymap"
)

func main() {
	keymapPath := flag.String("keymap", "", "path to a flat keymap YAML file")
	configPath := flag.String("config", "", "path to a pipeline configuration YAML file")
	flag.Parse()

	if *keymapPath == "" {
		log.Fatal("keysim: -keymap is required")
	}

	km, err := loadKeymap(*keymapPath)
	if err != nil {
		log.Fatalf("keysim: %v", err)
	}

	sched := newRealScheduler()
	layers := mb.NewLayerManager(km)
	reporter := &printingReporter{}
	executor := mb.NewExecutor(layers, reporter, sched)

	if *configPath != "" {
		installPipelines(executor, *configPath)
	}

	tty, err := term.Open("/dev/tty")
	if err != nil {
		log.Fatalf("keysim: open tty: %v", err)
	}
	defer tty.Restore()

	if err := term.CBreakMode(tty); err != nil {
		log.Fatalf("keysim: cbreak mode: %v", err)
	}

	keys := make(chan byte)
	go readBytes(tty, keys)

	fmt.Println("keysim ready - press keys, Ctrl-C to exit")

	for {
		select {
		case b := <-keys:
			if b == 0x03 { // Ctrl-C
				return
			}
			now := sched.nowMs()
			executor.ProcessKey(mb.AbsKeyEvent{Keypos: mb.Keypos(b), IsPress: true, Time: now})
			executor.ProcessKey(mb.AbsKeyEvent{Keypos: mb.Keypos(b), IsPress: false, Time: now})
		case cb := <-sched.fires:
			cb()
		}
	}
}

func readBytes(r io.Reader, out chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			close(out)
			return
		}
		if n > 0 {
			out <- buf[0]
		}
	}
}

func loadKeymap(path string) (*keymap.Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return keymap.LoadFlatYAML(data)
}

func installPipelines(executor *mb.Executor, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("keysim: read config: %v", err)
	}
	pipelines, err := config.Load(data)
	if err != nil {
		log.Fatalf("keysim: parse config: %v", err)
	}
	for _, td := range pipelines.TapDances {
		executor.AddPhysicalPipeline(td)
	}
	if pipelines.Combo != nil {
		executor.AddPhysicalPipeline(pipelines.Combo)
	}
	if pipelines.OneShot != nil {
		executor.AddVirtualPipeline(pipelines.OneShot)
	}
	if pipelines.Replacer != nil {
		executor.AddVirtualPipeline(pipelines.Replacer)
	}
}

// printingReporter is the stdout HID reporter for this demo: every
// call other than Flush is printed as it happens.
type printingReporter struct{}

func (printingReporter) RegisterKey(keycode mb.Keycode)   { fmt.Printf("register %#x\n", uint32(keycode)) }
func (printingReporter) UnregisterKey(keycode mb.Keycode) { fmt.Printf("unregister %#x\n", uint32(keycode)) }
func (printingReporter) TapKey(keycode mb.Keycode)        { fmt.Printf("tap %#x\n", uint32(keycode)) }
func (printingReporter) SetActiveLayer(layer uint8)       { fmt.Printf("layer %d\n", layer) }
func (printingReporter) Flush()                           {}

// realScheduler is a real-clock monkeyboard.Scheduler. ScheduleDeferred
// arms a time.Timer that, on firing, posts the callback onto fires
// rather than invoking it directly, so it still runs on the main
// event-loop goroutine alongside every other executor call.
type realScheduler struct {
	start time.Time
	fires chan func()
	next  mb.Token
	timer map[mb.Token]*time.Timer
}

func newRealScheduler() *realScheduler {
	return &realScheduler{
		start: time.Now(),
		fires: make(chan func()),
		timer: make(map[mb.Token]*time.Timer),
	}
}

func (s *realScheduler) nowMs() mb.Time {
	return mb.Time(uint32(time.Since(s.start).Milliseconds()))
}

func (s *realScheduler) ScheduleDeferred(delayMs uint32, callback func()) mb.Token {
	s.next++
	token := s.next
	s.timer[token] = time.AfterFunc(time.Duration(delayMs)*time.Millisecond, func() {
		s.fires <- callback
	})
	return token
}

func (s *realScheduler) CancelDeferred(token mb.Token) {
	if t, ok := s.timer[token]; ok {
		t.Stop()
		delete(s.timer, token)
	}
}
