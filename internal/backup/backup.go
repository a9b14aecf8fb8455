// Package backup persists a Plan the way config_parser.cpp's
// SaveConfigInformation does: a last-config.txt pointer to the most recent
// expression backup, an append-only config-log.txt audit trail, and a
// per-save backup file under a backup/ subdirectory.
package backup

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"

	"github.com/kinstaky/logicroute/internal/routing"
)

// Writer saves Plan snapshots under Dir, the same layout
// SaveConfigInformation keeps under $HOME/.easy-config-logic.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer rooted at dir. An empty dir resolves to
// $HOME/.easy-config-logic, matching the original's fixed location.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("backup: resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".easy-config-logic")
	}
	return &Writer{Dir: dir}, nil
}

// Save writes a backup of plan and appends a line to the audit trail.
// expression selects which original mode this backup plays: true mirrors
// SaveConfigInformation(expression=true) — it also updates last-config.txt
// and writes the plain-text expression list; false mirrors the
// register-mode call, which only logs in the original, so here it's
// extended to also write a rezi-encoded snapshot of the full routing state,
// since a register-only backup with no recoverable content is not useful.
// Save returns the backup file's base path, sans extension.
func (w *Writer) Save(plan *routing.Plan, expression bool) (string, error) {
	backupDir := filepath.Join(w.Dir, "backup")
	if err := os.MkdirAll(backupDir, 0o770); err != nil {
		return "", fmt.Errorf("backup: create backup directory: %w", err)
	}

	now := time.Now()
	timeStr := now.Format("2006-01-02 15:04:05")
	fileTime := now.Format("2006-01-02-15-04-05")
	fileName := filepath.Join(backupDir, fileTime+"-backup")

	runID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("backup: generate run id: %w", err)
	}

	if expression {
		lastInfo := fmt.Sprintf("0\n%s\n%s\n", timeStr, fileName)
		if err := os.WriteFile(filepath.Join(w.Dir, "last-config.txt"), []byte(lastInfo), 0o660); err != nil {
			return "", fmt.Errorf("backup: write last-config.txt: %w", err)
		}
	}

	kind := "register"
	if expression {
		kind = "expression"
	}
	logLine := fmt.Sprintf("0, %s, %s, %s, %s\n", timeStr, kind, fileName, runID)
	logFile, err := os.OpenFile(filepath.Join(w.Dir, "config-log.txt"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o660)
	if err != nil {
		return "", fmt.Errorf("backup: open config-log.txt: %w", err)
	}
	defer logFile.Close()
	if _, err := logFile.WriteString(logLine); err != nil {
		return "", fmt.Errorf("backup: append config-log.txt: %w", err)
	}

	if expression {
		var contents string
		for _, expr := range plan.Expressions {
			contents += expr + "\n"
		}
		if err := os.WriteFile(fileName+".txt", []byte(contents), 0o660); err != nil {
			return "", fmt.Errorf("backup: write backup file: %w", err)
		}
		return fileName, nil
	}

	snapshot := plan.Snapshot()
	encoded := rezi.EncBinary(&snapshot)
	registerContents := base64.StdEncoding.EncodeToString(encoded)
	if err := os.WriteFile(fileName+"-register.txt", []byte(registerContents), 0o660); err != nil {
		return "", fmt.Errorf("backup: write register backup: %w", err)
	}
	return fileName, nil
}

// Restore decodes a register-mode backup file written by Save(plan, false)
// back into a Plan.
func Restore(path string) (*routing.Plan, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backup: read register backup: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("backup: decode register backup: %w", err)
	}

	var snapshot routing.Snapshot
	n, err := rezi.DecBinary(decoded, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("backup: rezi decode: %w", err)
	}
	if n != len(decoded) {
		return nil, fmt.Errorf("backup: decoded %d/%d bytes of register backup", n, len(decoded))
	}

	return routing.RestorePlan(snapshot), nil
}
