package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sasa5linkar/webanno-spacy-converter/storage"
)

func importCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "convert every TSV file of a directory and store the bins",
		ArgsUsage: "<dir>",
		Flags: append(convertFlags(),
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "files converted concurrently"},
		),
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("import: expected one directory")
			}
			s, err := loadSettings(c, ui)
			if err != nil {
				return err
			}

			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, s.cfg.Store, true)
			if err != nil {
				return err
			}
			return importCommand(c.Context, repo, s, c.Args().First(), ui)
		},
	}
}

// importCommand converts the files concurrently and writes the bins in file
// name order. The first failure stops the files not yet started.
func importCommand(ctx context.Context, repo storage.DocWriter, s *settings, dir string, ui UI) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.tsv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("import: no .tsv files in %s", dir)
	}

	bins := make([]storage.Bin, len(files))
	p, bar := newProgress(ui, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, path := range files {
		g.Go(func() error {
			// a file failed or the caller gave up
			if err := gctx.Err(); err != nil {
				return err
			}

			docs, err := convertFile(s, path)
			if err != nil {
				return err
			}
			bins[i] = storage.Bin{Title: filepath.Base(path), Docs: docs}
			bar.Incr()
			return nil
		})
	}

	err = g.Wait()
	p.Stop()
	if err != nil {
		return err
	}

	for _, b := range bins {
		id, err := repo.Write(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(ui.Out, "📖 %s %s\n", id, b.Title)
	}

	s.log.Info("imported", "dir", dir, "files", len(files))
	return nil
}
