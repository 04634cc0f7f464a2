// Package config loads the converter settings from an optional YAML file and
// the environment.
package config

// Config holds all converter settings.
type Config struct {
	// Variant of the WebAnno TSV files: base, nel or mwe.
	Variant string `yaml:"variant" env:"WSCONV_VARIANT" env-default:"nel"`

	Convert ConvertConfig `yaml:"convert"`

	// Store is the bin storage: a directory or a SQLite file.
	Store string `yaml:"store" env:"WSCONV_STORE" env-default:"wsconv.db"`

	// Number of files converted in parallel by import.
	Workers int `yaml:"workers" env:"WSCONV_WORKERS" env-default:"4"`

	Log LogConfig `yaml:"log"`
}

// ConvertConfig holds the sentence to doc conversion settings.
type ConvertConfig struct {
	BatchSize  int    `yaml:"batch_size"  env:"WSCONV_BATCH_SIZE"  env-default:"10"`
	TagLayer   string `yaml:"tag_layer"   env:"WSCONV_TAG_LAYER"`
	LemmaLayer string `yaml:"lemma_layer" env:"WSCONV_LEMMA_LAYER"`

	// Switch off the conversion of entities or of their links.
	NoNER bool `yaml:"no_ner" env:"WSCONV_NO_NER"`
	NoNEL bool `yaml:"no_nel" env:"WSCONV_NO_NEL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"WSCONV_LOG_LEVEL" env-default:"info"`
}
