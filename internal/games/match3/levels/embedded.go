package levels

import (
	"embed"
	"io/fs"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Embedded returns a loader over the built-in campaign.
func Embedded() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		panic(err)
	}
	return NewFSLoader("campaign", sub)
}

// Campaign returns the built-in levels in play order.
func Campaign() ([]Level, error) {
	return Embedded().LoadAll()
}

// Next returns the level after id in list, if any.
func Next(list []Level, id string) (Level, bool) {
	for i, l := range list {
		if l.ID == id && i+1 < len(list) {
			return list[i+1], true
		}
	}
	return Level{}, false
}
