package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Attributes AttributeProvider
	Positioner Positioner
	Desktop    DesktopOracle
	Enumerator Enumerator
	Events     EventSource
	Instance   InstanceLocker

	// close releases backend resources (hooks, COM). May be nil.
	close func() error
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("tilewm is not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// ErrUnknownWindow is returned by backends for handles they do not know.
var ErrUnknownWindow = errors.New("unknown window")

// ErrAlreadyRunning is returned by InstanceLocker.Acquire when another tiler holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Win32 registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// SetCloser registers the function Close will call.
func (p *Provider) SetCloser(fn func() error) {
	p.close = fn
}

// Close releases backend resources. It is safe to call on a provider without a closer.
func (p *Provider) Close() error {
	if p == nil || p.close == nil {
		return nil
	}
	return p.close()
}

// LoggerSetter is implemented by collaborators that log on their own.
type LoggerSetter interface {
	SetLogger(l *log.Logger)
}

// SetLogger hands l to every collaborator that implements LoggerSetter.
func (p *Provider) SetLogger(l *log.Logger) {
	for _, c := range []any{p.Attributes, p.Positioner, p.Desktop, p.Enumerator, p.Events, p.Instance} {
		if s, ok := c.(LoggerSetter); ok {
			s.SetLogger(l)
		}
	}
}
