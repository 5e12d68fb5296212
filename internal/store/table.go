package store

import (
  "encoding/csv"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "sync"

  "github.com/edusync/edusync-backend/internal/logger"
)

// Table is one flat CSV table on disk. Every mutation holds the table lock,
// so at most one write per table is in flight at a time, and ReplaceAll goes
// through a temp file plus rename so a crash mid-write never leaves a
// half-written table behind.
type Table struct {
  mu     sync.Mutex
  path   string
  header []string
  log    *logger.Logger
}

func NewTable(path string, header []string, baseLog *logger.Logger) *Table {
  tableLog := baseLog.With("table", filepath.Base(path))
  return &Table{path: path, header: header, log: tableLog}
}

func (t *Table) Path() string {
  return t.path
}

func (t *Table) Header() []string {
  return append([]string(nil), t.header...)
}

// LoadAll returns every record in file order, keyed by the file's own header
// row. A table that does not exist yet reads as empty, not as an error.
func (t *Table) LoadAll() ([]map[string]string, error) {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.loadAllLocked()
}

func (t *Table) loadAllLocked() ([]map[string]string, error) {
  f, err := os.Open(t.path)
  if err != nil {
    if os.IsNotExist(err) {
      return []map[string]string{}, nil
    }
    return nil, fmt.Errorf("Failed to open table %s: %w", t.path, err)
  }
  defer f.Close()

  reader := csv.NewReader(f)
  reader.FieldsPerRecord = -1

  fileHeader, err := reader.Read()
  if err == io.EOF {
    return []map[string]string{}, nil
  }
  if err != nil {
    return nil, fmt.Errorf("Failed to read header of %s: %w", t.path, err)
  }

  var records []map[string]string
  for {
    row, err := reader.Read()
    if err == io.EOF {
      break
    }
    if err != nil {
      return nil, fmt.Errorf("Failed to read row of %s: %w", t.path, err)
    }
    record := make(map[string]string, len(fileHeader))
    for i, col := range fileHeader {
      if i < len(row) {
        record[col] = row[i]
      } else {
        record[col] = ""
      }
    }
    records = append(records, record)
  }
  if records == nil {
    records = []map[string]string{}
  }
  return records, nil
}

// Append adds one record, creating the table with its header row on first
// write. Columns missing from the record are written empty.
func (t *Table) Append(record map[string]string) error {
  t.mu.Lock()
  defer t.mu.Unlock()

  _, statErr := os.Stat(t.path)
  writeHeader := os.IsNotExist(statErr)

  f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
  if err != nil {
    return fmt.Errorf("Failed to open table %s for append: %w", t.path, err)
  }
  defer f.Close()

  writer := csv.NewWriter(f)
  if writeHeader {
    if err := writer.Write(t.header); err != nil {
      return fmt.Errorf("Failed to write header of %s: %w", t.path, err)
    }
  }
  if err := writer.Write(t.rowFor(record)); err != nil {
    return fmt.Errorf("Failed to append to %s: %w", t.path, err)
  }
  writer.Flush()
  if err := writer.Error(); err != nil {
    return fmt.Errorf("Failed to flush append to %s: %w", t.path, err)
  }
  return nil
}

// ReplaceAll rewrites the whole table. The new content is written to a temp
// file in the same directory and renamed over the old one.
func (t *Table) ReplaceAll(records []map[string]string) error {
  t.mu.Lock()
  defer t.mu.Unlock()
  return t.replaceAllLocked(records)
}

func (t *Table) replaceAllLocked(records []map[string]string) error {
  dir := filepath.Dir(t.path)
  tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
  if err != nil {
    return fmt.Errorf("Failed to create temp file for %s: %w", t.path, err)
  }
  tmpName := tmp.Name()
  defer os.Remove(tmpName)

  writer := csv.NewWriter(tmp)
  if err := writer.Write(t.header); err != nil {
    tmp.Close()
    return fmt.Errorf("Failed to write header of %s: %w", t.path, err)
  }
  for _, record := range records {
    if err := writer.Write(t.rowFor(record)); err != nil {
      tmp.Close()
      return fmt.Errorf("Failed to write row of %s: %w", t.path, err)
    }
  }
  writer.Flush()
  if err := writer.Error(); err != nil {
    tmp.Close()
    return fmt.Errorf("Failed to flush %s: %w", t.path, err)
  }
  if err := tmp.Sync(); err != nil {
    tmp.Close()
    return fmt.Errorf("Failed to sync %s: %w", t.path, err)
  }
  if err := tmp.Close(); err != nil {
    return fmt.Errorf("Failed to close temp file for %s: %w", t.path, err)
  }
  if err := os.Rename(tmpName, t.path); err != nil {
    return fmt.Errorf("Failed to replace %s: %w", t.path, err)
  }
  return nil
}

// Update runs a read-modify-write cycle under the table lock, so concurrent
// upserts against the same table cannot lose updates.
func (t *Table) Update(mutate func(records []map[string]string) ([]map[string]string, error)) error {
  t.mu.Lock()
  defer t.mu.Unlock()

  records, err := t.loadAllLocked()
  if err != nil {
    return err
  }
  updated, err := mutate(records)
  if err != nil {
    return err
  }
  return t.replaceAllLocked(updated)
}

func (t *Table) rowFor(record map[string]string) []string {
  row := make([]string, len(t.header))
  for i, col := range t.header {
    row[i] = record[col]
  }
  return row
}
