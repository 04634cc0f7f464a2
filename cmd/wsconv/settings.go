package main

import (
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/sasa5linkar/webanno-spacy-converter/config"
	"github.com/sasa5linkar/webanno-spacy-converter/logger"
	"github.com/sasa5linkar/webanno-spacy-converter/spacy"
	"github.com/sasa5linkar/webanno-spacy-converter/tsv"
)

// settings is the configuration of one command run.
type settings struct {
	cfg     *config.Config
	variant tsv.Variant
	log     *log.Logger
}

// convertFlags are the flags of the commands building docs.
func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "batch-size", Aliases: []string{"b"}, Usage: "sentences per doc"},
		&cli.StringFlag{Name: "tag-layer", Usage: "token layer holding the tags"},
		&cli.StringFlag{Name: "lemma-layer", Usage: "token layer holding the lemmas"},
		&cli.BoolFlag{Name: "no-ner", Usage: "do not convert entities"},
		&cli.BoolFlag{Name: "no-nel", Usage: "do not convert entity links"},
	}
}

// loadSettings reads the configuration and applies the flags given on the
// command line over it.
func loadSettings(c *cli.Context, ui UI) (*settings, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("variant") {
		cfg.Variant = c.String("variant")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("batch-size") {
		cfg.Convert.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("tag-layer") {
		cfg.Convert.TagLayer = c.String("tag-layer")
	}
	if c.IsSet("lemma-layer") {
		cfg.Convert.LemmaLayer = c.String("lemma-layer")
	}
	if c.Bool("no-ner") {
		cfg.Convert.NoNER = true
	}
	if c.Bool("no-nel") {
		cfg.Convert.NoNEL = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	variant, err := tsv.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(ui.Err, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	return &settings{cfg: cfg, variant: variant, log: lg}, nil
}

func (s *settings) parser() *tsv.Parser {
	p := tsv.NewParser(s.variant)
	p.Log = s.log
	return p
}

func (s *settings) writer() *tsv.Writer {
	return tsv.NewWriter(s.variant)
}

func (s *settings) builder() *spacy.Builder {
	return &spacy.Builder{
		BatchSize:  s.cfg.Convert.BatchSize,
		TagLayer:   s.cfg.Convert.TagLayer,
		LemmaLayer: s.cfg.Convert.LemmaLayer,
		NER:        !s.cfg.Convert.NoNER,
		NEL:        !s.cfg.Convert.NoNEL,
	}
}

func (s *settings) extractor() *spacy.Extractor {
	return &spacy.Extractor{
		TagLayer:   s.cfg.Convert.TagLayer,
		LemmaLayer: s.cfg.Convert.LemmaLayer,
	}
}
