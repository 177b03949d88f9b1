package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/geeta-ai/geeta-be/types"
	"github.com/geeta-ai/geeta-be/utils"
)

// UploadedFile carries an uploaded file's name and raw bytes between the
// handler layer and the loading pipeline.
type UploadedFile struct {
	Name string
	Data []byte
}

// FileService turns uploaded files into store entries: extract text, then
// add to the document store which handles splitting and context rebuilds.
type FileService struct {
	extractor *ExtractService
}

func NewFileService(extractor *ExtractService) *FileService {
	return &FileService{extractor: extractor}
}

// LoadFile extracts text from a single file and adds it to the store.
// Returns the ids of the entries created (more than one when the file was
// split into parts).
func (s *FileService) LoadFile(store *DocumentStore, filename string, data []byte) ([]string, error) {
	name := utils.SanitizeFilename(filepath.Base(filename))
	text, err := s.extractor.Extract(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", name, err)
	}
	ids, err := store.AddDocument(name, text)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", name, err)
	}
	return ids, nil
}

// LoadBatch loads a set of files, continuing past individual failures.
// The result records per-file errors alongside the ids that did load.
func (s *FileService) LoadBatch(store *DocumentStore, files []UploadedFile) types.BatchResult {
	result := types.BatchResult{Total: len(files)}
	for _, f := range files {
		ids, err := s.LoadFile(store, f.Name, f.Data)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", f.Name, err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Loaded++
		result.IDs = append(result.IDs, ids...)
	}
	return result
}

// LoadZip loads every supported file inside a zip archive. Directories and
// unsupported formats are skipped without counting against the batch.
func (s *FileService) LoadZip(store *DocumentStore, data []byte) (types.BatchResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return types.BatchResult{}, fmt.Errorf("invalid zip archive: %w", err)
	}

	var files []UploadedFile
	var readErrors []string
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name))
		if !SupportedExtensions[ext] {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("failed to open %s: %v", entry.Name, err))
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("failed to read %s: %v", entry.Name, err))
			continue
		}
		files = append(files, UploadedFile{Name: entry.Name, Data: content})
	}

	result := s.LoadBatch(store, files)
	result.Total += len(readErrors)
	result.Errors = append(result.Errors, readErrors...)
	return result, nil
}
