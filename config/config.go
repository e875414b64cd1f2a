package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pixsteg/cryptography"
	"pixsteg/stegano/img"
	"pixsteg/util"
)

const (
	LogFilename = "log.log"
	DbFilename  = "history.db"
)

/*
 * Configuration for steganography: where decoys are picked from when no
 * input image is given and how carriers are written.
 */
type SteganoConfig struct {
	Folder       string `yaml:"decoy_files_folder"`
	OutputFormat string `yaml:"output_format"` // auto, png, bmp or jpeg
	JpegQuality  int    `yaml:"jpeg_quality"`
	ScanWorkers  int    `yaml:"scan_workers"` // 0 means one per cpu
}

// history of produced and read carriers, see util.DB
type HistoryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DbFile      string `yaml:"db_file"`
	DbPassword  string `yaml:"db_password"`
	DbRowsLimit uint   `yaml:"db_rows_limit"`
}

type FullConfig struct {
	StegConfig SteganoConfig   `yaml:"steganography_config"`
	Logger     util.LoggerInfo `yaml:"logger_config"`
	History    HistoryConfig   `yaml:"history_config"`
}

func DefaultConfig(folder string) *FullConfig {
	return &FullConfig{
		StegConfig: SteganoConfig{
			OutputFormat: string(img.FormatAuto),
			JpegQuality:  img.DefaultJpegQuality,
		},
		Logger: util.LoggerInfo{
			Filename:  filepath.Join(folder, LogFilename),
			IsColored: false,
			SaveTime:  true,
			Mode:      util.Error | util.Warning,
		},
		History: HistoryConfig{
			Enabled:     false,
			DbFile:      filepath.Join(folder, DbFilename),
			DbRowsLimit: 10000,
		},
	}
}

func (c *FullConfig) Options() (img.Options, error) {
	format, err := img.ParseFormat(c.StegConfig.OutputFormat)
	if err != nil {
		return img.Options{}, err
	}
	return img.Options{
		Format:      format,
		JpegQuality: c.StegConfig.JpegQuality,
	}, nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig(filename string, key []byte) (*FullConfig, error) {
	data, err := LoadEncrypted(filename, key)
	if err != nil {
		return nil, err
	}
	var conf FullConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig(filename string, key []byte, c *FullConfig) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return SaveEncrypted(filename, key, data)
}

/*
 * Functions for saving and loading encrypted files.
 */
func LoadEncrypted(filename string, key []byte) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Decrypt(data, key)
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted(filename string, key, data []byte) error {
	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt(data, key)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0600)
}
