// Package filestorage implements the storage.Backend interface by writing
// project documents as JSON files, optionally gzip-compressed.
package filestorage

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trhaseeb/geo-report/internal/config"
	"github.com/trhaseeb/geo-report/internal/logging"
	"github.com/trhaseeb/geo-report/internal/project"
)

// Backend writes one file per project document under the configured
// output directory.
type Backend struct {
	cfg config.FileConfig
	log *logging.SlogManager

	lastExportPath string
}

// New creates a new file storage backend.
func New(cfg config.FileConfig, logManager *logging.SlogManager) *Backend {
	return &Backend{
		cfg: cfg,
		log: logManager,
	}
}

// Init ensures the output directory exists.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (b *Backend) Close() error {
	return nil
}

// Save writes the document to a file named from its title and last-updated
// timestamp.
func (b *Backend) Save(doc *project.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	title := strings.ReplaceAll(doc.Title, " ", "_")
	title = strings.ReplaceAll(title, ":", "_")
	timestamp := doc.UpdatedAt.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", title, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", title, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzip(outputPath, data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	}

	b.lastExportPath = outputPath
	b.log.WriteLog("file:Save", fmt.Sprintf("Exported project to %s", outputPath), "INFO")
	return nil
}

// Load reads a document by filename. A bare name is resolved against the
// output directory; gzipped files are detected by their magic bytes.
func (b *Backend) Load(ref string) (*project.Document, error) {
	path := ref
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(b.cfg.OutputDir, ref)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	if len(data) > 1 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		defer gz.Close()
		data, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress project file: %w", err)
		}
	}

	return project.Decode(b.log.Logger(), data)
}

// List returns the project filenames present in the output directory.
func (b *Backend) List() ([]string, error) {
	entries, err := os.ReadDir(b.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz") {
			names = append(names, name)
		}
	}
	return names, nil
}

// GetExportedFilePath returns the path of the most recent Save.
func (b *Backend) GetExportedFilePath() string {
	return b.lastExportPath
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	if _, err := gzWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write gzip data: %w", err)
	}
	return nil
}
