//go:build windows

package windows

import (
	"github.com/charmbracelet/log"

	"github.com/mj1618/tilewm/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		desktops, err := NewVirtualDesktops()
		if err != nil {
			return nil, err
		}
		p := &platform.Provider{
			Attributes: NewAttributes(),
			Positioner: NewPositioner(),
			Desktop:    desktops,
			Enumerator: NewEnumerator(),
			Events:     NewEvents(log.Default()),
			Instance:   NewInstance(),
		}
		p.SetCloser(desktops.Close)
		return p, nil
	}
}
