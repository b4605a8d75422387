//go:build windows

package windows

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"

	"github.com/mj1618/tilewm/internal/model"
)

const (
	eventsClassName = "tilewm.events"

	// wmPost carries the side-table key of a notification queued by Post.
	wmPost = wmApp + 1
	// wmStop asks the pump to destroy its window and quit.
	wmStop = wmApp + 2
)

// message is the Passthrough payload: a window message the tiler did not handle.
type message struct {
	HWnd, Msg, WParam, LParam uintptr
}

var winEventKinds = map[uint32]model.NotificationKind{
	eventObjectShow:          model.Created,
	eventObjectDestroy:       model.Destroyed,
	eventObjectCloaked:       model.Cloaked,
	eventObjectUncloaked:     model.Uncloaked,
	eventSystemMinimizeStart: model.MinimizeStart,
	eventSystemMinimizeEnd:   model.MinimizeEnd,
	eventSystemMoveSizeEnd:   model.MoveResizeEnd,
}

var hookRanges = [][2]uintptr{
	{eventSystemMoveSizeEnd, eventSystemMoveSizeEnd},
	{eventSystemMinimizeStart, eventSystemMinimizeEnd},
	{eventObjectDestroy, eventObjectShow},
	{eventObjectCloaked, eventObjectUncloaked},
}

// active is the running source. Window procedures and WinEvent callbacks
// carry no user pointer, and only one pump runs per process.
var active atomic.Pointer[Events]

var (
	wndProcCallback = windows.NewCallback(func(hwnd, m, wparam, lparam uintptr) uintptr {
		if e := active.Load(); e != nil {
			return e.wndProc(hwnd, uint32(m), wparam, lparam)
		}
		r, _, _ := procDefWindowProcW.Call(hwnd, m, wparam, lparam)
		return r
	})
	// Out-of-context hooks are called from the message loop of the thread
	// that installed them, which is the pump thread, so delivering here is safe.
	winEventCallback = windows.NewCallback(func(_, event, hwnd, idObject, idChild, _, _ uintptr) uintptr {
		if e := active.Load(); e != nil {
			e.winEvent(uint32(event), hwnd, int32(idObject), int32(idChild))
		}
		return 0
	})
)

// Events implements platform.EventSource. Run pumps messages for a hidden
// shell-hook window on a locked OS thread, and every notification, including
// those queued by Post from other goroutines, is handled on that thread.
type Events struct {
	logger *log.Logger

	mu      sync.Mutex
	seq     uintptr
	pending map[uintptr]model.Notification

	hwnd     atomic.Uintptr
	shellMsg uint32

	// Owned by the pump thread.
	handle   func(model.Notification) uintptr
	busy     bool
	deferred []model.Notification
}

// NewEvents creates an event source. It does nothing until Run.
func NewEvents(logger *log.Logger) *Events {
	if logger == nil {
		logger = log.Default()
	}
	return &Events{
		logger:  logger.WithPrefix("events"),
		pending: make(map[uintptr]model.Notification),
	}
}

// SetLogger replaces the logger. Call it before Run.
func (e *Events) SetLogger(l *log.Logger) {
	e.logger = l.WithPrefix("events")
}

func (e *Events) Run(ctx context.Context, handle func(model.Notification) uintptr) error {
	if !active.CompareAndSwap(nil, e) {
		return errors.New("an event source is already running")
	}
	defer active.Store(nil)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.handle = handle
	hwnd, cleanup, err := e.open()
	if err != nil {
		return err
	}
	defer cleanup()

	e.hwnd.Store(hwnd)
	defer e.hwnd.Store(0)
	e.flush(hwnd)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			procPostMessageW.Call(hwnd, wmStop, 0, 0)
		case <-stop:
		}
	}()

	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return lastError("GetMessageW", err)
		case 0:
			return ctx.Err()
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// open creates the hidden window, registers it for shell hook messages and
// installs the WinEvent hooks. cleanup undoes whatever succeeded.
func (e *Events) open() (hwnd uintptr, cleanup func(), err error) {
	instance, _, _ := procGetModuleHandleW.Call(0)
	name, err := windows.UTF16PtrFromString(eventsClassName)
	if err != nil {
		return 0, nil, err
	}

	var (
		registered bool
		shellHook  bool
		hooks      []uintptr
	)
	cleanup = func() {
		for _, h := range hooks {
			procUnhookWinEvent.Call(h)
		}
		if shellHook {
			procDeregisterShellHook.Call(hwnd)
		}
		if hwnd != 0 {
			procDestroyWindow.Call(hwnd)
		}
		if registered {
			procUnregisterClassW.Call(uintptr(unsafe.Pointer(name)), instance)
		}
	}
	fail := func(err error) (uintptr, func(), error) {
		cleanup()
		return 0, nil, err
	}

	wc := wndClassEx{WndProc: wndProcCallback, Instance: instance, ClassName: name}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return fail(lastError("RegisterClassExW", err))
	}
	registered = true

	created, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(name)),
		0, 0, 0, 0, 0,
		0, 0, instance, 0,
	)
	if created == 0 {
		return fail(lastError("CreateWindowExW", err))
	}
	hwnd = created

	hook, err := windows.UTF16PtrFromString("SHELLHOOK")
	if err != nil {
		return fail(err)
	}
	r, _, _ := procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(hook)))
	e.shellMsg = uint32(r)
	if ok, _, err := procRegisterShellHook.Call(hwnd); ok == 0 {
		return fail(lastError("RegisterShellHookWindow", err))
	}
	shellHook = true

	for _, rng := range hookRanges {
		h, _, err := procSetWinEventHook.Call(rng[0], rng[1], 0, winEventCallback, 0, 0, wineventOutOfContext|wineventSkipOwnProcess)
		if h == 0 {
			return fail(lastError("SetWinEventHook", err))
		}
		hooks = append(hooks, h)
	}
	e.logger.Debug("event pump ready", "hwnd", model.WindowHandle(hwnd), "hooks", len(hooks))
	return hwnd, cleanup, nil
}

func (e *Events) wndProc(hwnd uintptr, m uint32, wparam, lparam uintptr) uintptr {
	switch {
	case e.shellMsg != 0 && m == e.shellMsg:
		h := model.WindowHandle(lparam)
		switch wparam & 0x7FFF {
		case hshellWindowCreated:
			return e.deliver(model.Notification{Kind: model.ShellCreated, Handle: h})
		case hshellWindowDestroyed:
			return e.deliver(model.Notification{Kind: model.ShellDestroyed, Handle: h})
		case hshellWindowActivated:
			return e.deliver(model.Notification{Kind: model.Activated, Handle: h})
		}
	case m == wmPost:
		if n, ok := e.take(wparam); ok {
			return e.deliver(n)
		}
		return 0
	case m == wmStop:
		procDestroyWindow.Call(hwnd)
		return 0
	case m == wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	case m == wmDisplayChange, m == wmSettingChange && wparam == spiSetWorkArea:
		e.deliver(model.Notification{Kind: model.DisplayChange})
	}
	return e.deliver(model.Notification{
		Kind:    model.Passthrough,
		Payload: message{HWnd: hwnd, Msg: uintptr(m), WParam: wparam, LParam: lparam},
	})
}

func (e *Events) winEvent(event uint32, hwnd uintptr, idObject, idChild int32) {
	if hwnd == 0 || idObject != objidWindow || idChild != childidSelf {
		return
	}
	if kind, ok := winEventKinds[event]; ok {
		e.deliver(model.Notification{Kind: kind, Handle: model.WindowHandle(hwnd)})
	}
}

// deliver hands n to the consumer. Repositioning can pump sent messages back
// into the window procedure while a notification is being handled; those are
// queued and handled once the current one returns.
func (e *Events) deliver(n model.Notification) uintptr {
	if e.handle == nil {
		return e.Forward(n.Payload)
	}
	if e.busy {
		if n.Kind == model.Passthrough {
			return e.Forward(n.Payload)
		}
		e.deferred = append(e.deferred, n)
		return 0
	}
	e.busy = true
	defer func() { e.busy = false }()
	r := e.handle(n)
	for len(e.deferred) > 0 {
		next := e.deferred[0]
		e.deferred = e.deferred[1:]
		e.handle(next)
	}
	return r
}

// Post stores n under a fresh key and wakes the pump with that key. Posts made
// before Run are delivered once the pump starts.
func (e *Events) Post(n model.Notification) error {
	e.mu.Lock()
	e.seq++
	key := e.seq
	e.pending[key] = n
	e.mu.Unlock()

	hwnd := e.hwnd.Load()
	if hwnd == 0 {
		return nil
	}
	if ok, _, err := procPostMessageW.Call(hwnd, wmPost, key, 0); ok == 0 {
		e.take(key)
		return lastError("PostMessageW", err)
	}
	return nil
}

func (e *Events) take(key uintptr) (model.Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.pending[key]
	delete(e.pending, key)
	return n, ok
}

func (e *Events) flush(hwnd uintptr) {
	e.mu.Lock()
	keys := make([]uintptr, 0, len(e.pending))
	for k := range e.pending {
		keys = append(keys, k)
	}
	e.mu.Unlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		procPostMessageW.Call(hwnd, wmPost, k, 0)
	}
}

// Forward passes an unhandled window message to DefWindowProc.
func (e *Events) Forward(payload any) uintptr {
	m, ok := payload.(message)
	if !ok {
		return 0
	}
	r, _, _ := procDefWindowProcW.Call(m.HWnd, m.Msg, m.WParam, m.LParam)
	return r
}
