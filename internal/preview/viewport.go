package preview

import (
	"fmt"

	"github.com/ziadkadry99/mockweb/internal/templates"
)

// Mode is a preview viewport preset.
type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeTablet  Mode = "tablet"
	ModeMobile  Mode = "mobile"
)

// Viewport describes the frame width for a mode.
type Viewport struct {
	Mode  Mode   `json:"mode"`
	Width string `json:"width"`
}

// Viewports lists the presets in display order.
var Viewports = []Viewport{
	{Mode: ModeDesktop, Width: "100%"},
	{Mode: ModeTablet, Width: "768px"},
	{Mode: ModeMobile, Width: "375px"},
}

// ParseMode validates a viewport mode name.
func ParseMode(s string) (Mode, error) {
	for _, v := range Viewports {
		if string(v.Mode) == s {
			return v.Mode, nil
		}
	}
	return "", fmt.Errorf("unknown preview mode %q: must be one of desktop, tablet, mobile", s)
}

// DownloadName is the file name offered when downloading one language.
func DownloadName(lang templates.Language) string {
	return "website." + string(lang)
}

// DownloadContentType is the MIME type of downloaded sources.
const DownloadContentType = "text/plain"
