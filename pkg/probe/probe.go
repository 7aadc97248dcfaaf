package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// Info describes the container-level metadata of an MP4 file. It is
// display-only: the merge itself never inspects container structure,
// so this is how users spot inputs that do not share an encoding.
type Info struct {
	Path     string
	Name     string
	Size     int64
	ModTime  time.Time
	Duration time.Duration
	Codec    string
	Width    uint16
	Height   uint16
}

// File parses the box structure of the MP4 file at path and returns
// its metadata.
func File(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	probed, err := mp4.Probe(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mp4 structure: %w", err)
	}

	info := &Info{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
		Codec:   "unknown",
	}

	if probed.Timescale > 0 {
		seconds := float64(probed.Duration) / float64(probed.Timescale)
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	// First video track only, matching what players report
	for _, track := range probed.Tracks {
		if track.AVC != nil {
			info.Codec = "H.264 / AVC"
			info.Width = track.AVC.Width
			info.Height = track.AVC.Height
			break
		}
	}

	return info, nil
}
