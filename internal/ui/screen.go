package ui

import (
	"log"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen is the interface for all UI screens (Home, Watch).
type Screen interface {
	// Update handles input and logic. Return a non-nil ScreenTransition to change screens.
	Update() (*ScreenTransition, error)
	// Draw renders the screen.
	Draw(dst *ebiten.Image)
	// OnEnter is called when the screen becomes active.
	OnEnter()
	// OnExit is called when the screen is removed.
	OnExit()
	// Name returns the screen name for debugging.
	Name() string
}

type TransitionType int

const (
	TransitionPush TransitionType = iota
	TransitionPop
	TransitionReplace
)

type ScreenTransition struct {
	Type   TransitionType
	Screen Screen // nil for Pop
}

// ScreenManager manages a stack of screens.
type ScreenManager struct {
	stack []Screen
}

func NewScreenManager() *ScreenManager {
	return &ScreenManager{}
}

func (sm *ScreenManager) Push(s Screen) {
	sm.stack = append(sm.stack, s)
	s.OnEnter()
}

func (sm *ScreenManager) Pop() {
	if len(sm.stack) == 0 {
		return
	}
	top := sm.stack[len(sm.stack)-1]
	top.OnExit()
	sm.stack = sm.stack[:len(sm.stack)-1]
	if len(sm.stack) > 0 {
		sm.stack[len(sm.stack)-1].OnEnter()
	}
}

func (sm *ScreenManager) Replace(s Screen) {
	if len(sm.stack) > 0 {
		top := sm.stack[len(sm.stack)-1]
		top.OnExit()
		sm.stack[len(sm.stack)-1] = s
	} else {
		sm.stack = append(sm.stack, s)
	}
	s.OnEnter()
}

// PopToRoot exits and removes everything above the bottom screen.
func (sm *ScreenManager) PopToRoot() {
	for len(sm.stack) > 1 {
		top := sm.stack[len(sm.stack)-1]
		top.OnExit()
		sm.stack = sm.stack[:len(sm.stack)-1]
	}
	if len(sm.stack) > 0 {
		sm.stack[len(sm.stack)-1].OnEnter()
	}
}

func (sm *ScreenManager) Current() Screen {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

func (sm *ScreenManager) Update() error {
	s := sm.Current()
	if s == nil {
		return nil
	}
	tr, err := s.Update()
	if err != nil {
		return err
	}
	if tr != nil {
		switch tr.Type {
		case TransitionPush:
			sm.Push(tr.Screen)
		case TransitionPop:
			sm.Pop()
		case TransitionReplace:
			sm.Replace(tr.Screen)
		}
	}
	return nil
}

func (sm *ScreenManager) Draw(dst *ebiten.Image) {
	if s := sm.Current(); s != nil {
		s.Draw(dst)
	}
}

func (sm *ScreenManager) StackSize() int {
	return len(sm.stack)
}

// Router maps addresses onto the screen stack. Two routes exist: "/" is the
// catalog, "/watch/{category}/{video}" is a watch session. Screens are built
// by the injected factories so the router stays free of screen wiring.
// Safe for concurrent use; session timers navigate from their own
// goroutines while the game loop updates and draws.
type Router struct {
	mu   sync.Mutex
	sm   *ScreenManager
	path string

	// NewHome builds the catalog screen. Required.
	NewHome func() Screen
	// NewWatch builds a watch screen for the given slugs. Required.
	NewWatch func(categorySlug, videoSlug string) Screen
}

func NewRouter() *Router {
	return &Router{sm: NewScreenManager(), path: "/"}
}

// Start pushes the home screen. Call once after the factories are set.
func (r *Router) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sm.Push(r.NewHome())
	r.path = "/"
}

// Navigate moves to path. With replace set the stack depth is preserved, so
// back does not revisit the superseded address. Unknown paths are logged
// and ignored.
func (r *Router) Navigate(path string, replace bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == r.path {
		return
	}

	if path == "/" {
		// The catalog is always the bottom of the stack.
		r.sm.PopToRoot()
		r.path = "/"
		return
	}

	catSlug, vidSlug, ok := parseWatchPath(path)
	if !ok {
		log.Printf("router: ignoring unknown path %q", path)
		return
	}
	screen := r.NewWatch(catSlug, vidSlug)
	if replace && r.sm.StackSize() > 1 {
		r.sm.Replace(screen)
	} else {
		r.sm.Push(screen)
	}
	r.path = path
}

// Back pops one screen, returning to the previous address.
func (r *Router) Back() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sm.StackSize() <= 1 {
		return
	}
	r.sm.Pop()
	r.path = "/"
}

func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sm.StackSize()
}

// Update runs the top screen's Update without holding the router lock, so
// screen callbacks are free to call Navigate.
func (r *Router) Update() error {
	r.mu.Lock()
	s := r.sm.Current()
	r.mu.Unlock()
	if s == nil {
		return nil
	}
	tr, err := s.Update()
	if err != nil {
		return err
	}
	if tr != nil {
		r.mu.Lock()
		switch tr.Type {
		case TransitionPush:
			r.sm.Push(tr.Screen)
		case TransitionPop:
			r.sm.Pop()
		case TransitionReplace:
			r.sm.Replace(tr.Screen)
		}
		r.mu.Unlock()
	}
	return nil
}

func (r *Router) Draw(dst *ebiten.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sm.Draw(dst)
}

func parseWatchPath(path string) (categorySlug, videoSlug string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "watch" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
