package main

import (
	"github.com/gosuri/uiprogress"

	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

// newProgress starts a progress bar on the error stream.
func newProgress(ui UI, total int) (*uiprogress.Progress, *uiprogress.Bar) {
	p := uiprogress.New()
	p.Out = ui.Err
	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	p.Start()
	return p, bar
}

// preload loads all bins of pl into memory, showing the progress.
func preload(pl storage.Preloader, ui UI) error {
	var (
		p   *uiprogress.Progress
		bar *uiprogress.Bar
	)

	err := pl.Preload(func(current, total int, name string) {
		if bar == nil {
			p, bar = newProgress(ui, total)
		}
		bar.Set(current)
	})

	if p != nil {
		p.Stop()
	}
	return err
}
