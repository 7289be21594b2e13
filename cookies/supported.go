package cookies

import (
	"runtime"

	"github.com/use-agent/cookiefetch/browser"
)

// Supported lists the browsers whose cookie stores can be read on this
// platform. Safari's binarycookies store only exists on macOS.
func Supported() []browser.ID {
	ids := []browser.ID{browser.Chrome, browser.Edge, browser.Brave, browser.Opera, browser.Firefox}
	if runtime.GOOS == "darwin" {
		ids = append(ids, browser.Safari)
	}
	return ids
}
