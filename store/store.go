// Package store persists the tracker document as a single JSON file, with
// atomic writes, rotating backups, and corruption recovery.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"growth-tracker/model"
)

const maxRotatingBackups = 10

var errNoValidBackup = errors.New("no valid backup found")

// Load reads the document from a JSON file. A missing file yields a fresh
// default document; a corrupt or schema-invalid file yields an error.
func Load(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewDocument(), nil
		}
		return model.Document{}, err
	}
	return decodeDocument(data, model.DateOf(time.Now()))
}

// LoadWithRecovery loads the document and attempts automatic recovery when
// the main file is corrupted: the bad file is moved aside, the newest valid
// backup is restored, and failing that a fresh document is written. The
// returned message describes any recovery performed.
func LoadWithRecovery(path string) (model.Document, string, error) {
	doc, err := Load(path)
	if err == nil {
		return doc, "", nil
	}
	if !isCorruptDocumentError(err) {
		return model.Document{}, "", err
	}

	corruptPath, moveErr := moveCorruptFile(path)
	if moveErr != nil {
		return model.Document{}, "", fmt.Errorf("move corrupt file: %w", moveErr)
	}

	recovered, backupPath, backupErr := loadLatestValidBackup(path)
	if backupErr == nil {
		if err := Save(path, recovered); err != nil {
			return model.Document{}, "", fmt.Errorf("restore backup: %w", err)
		}
		msg := fmt.Sprintf("corrupt document recovered from %s", filepath.Base(backupPath))
		if corruptPath != "" {
			msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
		}
		return recovered, msg, nil
	}
	if !errors.Is(backupErr, errNoValidBackup) {
		return model.Document{}, "", fmt.Errorf("inspect backups: %w", backupErr)
	}

	fresh := model.NewDocument()
	if err := Save(path, fresh); err != nil {
		return model.Document{}, "", fmt.Errorf("initialize fresh document after corruption: %w", err)
	}
	msg := "corrupt document with no valid backup; starting fresh"
	if corruptPath != "" {
		msg += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
	}
	return fresh, msg, nil
}

// Save writes the document to path as indented JSON.
func Save(path string, doc model.Document) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Autosave writes safely using temporary file + atomic rename. It also keeps
// a latest backup (.bak) and a rotating timestamped backup set.
func Autosave(path string, doc model.Document) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	if err := backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func decodeDocument(data []byte, loadDay string) (model.Document, error) {
	if err := validateDocument(data); err != nil {
		return model.Document{}, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, err
	}

	Migrate(&doc, loadDay)
	return doc, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	rotatingPath := fmt.Sprintf("%s.bak.%s", path, timestamp)
	if err := os.WriteFile(rotatingPath, data, 0o644); err != nil {
		return err
	}

	return pruneRotatingBackups(path)
}

func pruneRotatingBackups(path string) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= maxRotatingBackups {
		return nil
	}

	sort.Strings(files)
	toDelete := files[:len(files)-maxRotatingBackups]
	for _, old := range toDelete {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func loadLatestValidBackup(path string) (model.Document, string, error) {
	candidates := make([]string, 0, 12)
	latest := path + ".bak"
	if _, err := os.Stat(latest); err == nil {
		candidates = append(candidates, latest)
	}
	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return model.Document{}, "", err
	}
	candidates = append(candidates, rotating...)
	if len(candidates) == 0 {
		return model.Document{}, "", errNoValidBackup
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iInfo, iErr := os.Stat(candidates[i])
		jInfo, jErr := os.Stat(candidates[j])
		if iErr != nil || jErr != nil {
			return candidates[i] > candidates[j]
		}
		return iInfo.ModTime().After(jInfo.ModTime())
	})

	loadDay := model.DateOf(time.Now())
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		doc, err := decodeDocument(data, loadDay)
		if err != nil {
			continue
		}
		return doc, candidate, nil
	}

	return model.Document{}, "", errNoValidBackup
}

func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptName := fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext)
	corruptPath := filepath.Join(filepath.Dir(path), corruptName)
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}

func isCorruptDocumentError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	if errors.Is(err, errSchemaViolation) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
