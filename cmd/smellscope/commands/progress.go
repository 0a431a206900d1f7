package commands

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/Sumatoshi-tech/smellscope/pkg/builder"
)

const progressWidth = 18

// fileProgress renders a bar advanced once per declared file.
type fileProgress struct {
	bar *progressbar.ProgressBar
}

func newFileProgress(w io.Writer, description string, total int) *fileProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(progressWidth),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)

	return &fileProgress{bar: bar}
}

// hook returns a builder option that advances the bar.
func (p *fileProgress) hook() builder.Option {
	return builder.WithFileHook(func(string) { _ = p.bar.Add(1) })
}

func (p *fileProgress) finish() {
	_ = p.bar.Finish()
}
