package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/dustin/go-humanize"
)

const (
	backupPrefix = "clientpro_backup_"
	backupExt    = ".db"
	// backupStamp sorts lexically in time order.
	backupStamp = "20060102_150405"
	// SafetySuffix names the copy taken just before a restore.
	SafetySuffix = ".before_restore"
)

// BackupFileName is the default snapshot name for t.
func BackupFileName(t time.Time) string {
	return backupPrefix + t.Format(backupStamp) + backupExt
}

type backupService struct {
	database      *sql.DB
	dbPath        string
	backupDir     string
	clients       repository.ClientRepo
	interventions repository.InterventionRepo
	observer      UseCaseObserver
	now           func() time.Time
}

func NewBackupService(
	database *sql.DB,
	dbPath, backupDir string,
	clients repository.ClientRepo,
	interventions repository.InterventionRepo,
	observers ...UseCaseObserver,
) BackupService {
	return &backupService{
		database:      database,
		dbPath:        dbPath,
		backupDir:     backupDir,
		clients:       clients,
		interventions: interventions,
		observer:      useCaseObserverOrNoop(observers),
		now:           time.Now,
	}
}

func (s *backupService) Info(ctx context.Context) (*BackupInfo, error) {
	info := &BackupInfo{DBPath: s.dbPath, BackupDir: s.backupDir}
	if s.dbPath != db.MemoryPath {
		st, err := os.Stat(s.dbPath)
		if err != nil {
			return nil, fmt.Errorf("reading database file: %w", err)
		}
		info.SizeBytes = st.Size()
	}
	info.Size = humanize.Bytes(uint64(info.SizeBytes))

	var err error
	if info.Clients, err = s.clients.Count(ctx, false); err != nil {
		return nil, fmt.Errorf("counting clients: %w", err)
	}
	counts, err := s.interventions.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting interventions: %w", err)
	}
	info.Interventions = counts.Total

	if info.Backups, err = s.listBackups(); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *backupService) Backup(ctx context.Context, dest string) (path string, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "backup", time.Now().UTC(), fields, &err)

	path = s.backupTarget(dest)
	fields["path"] = path
	if err := db.VacuumInto(ctx, s.database, path); err != nil {
		return "", err
	}
	return path, nil
}

// backupTarget resolves dest to a file path. An empty dest or an existing
// directory receives a timestamped file name.
func (s *backupService) backupTarget(dest string) string {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return filepath.Join(s.backupDir, BackupFileName(s.now()))
	}
	if st, err := os.Stat(dest); err == nil && st.IsDir() {
		return filepath.Join(dest, BackupFileName(s.now()))
	}
	return dest
}

func (s *backupService) Restore(ctx context.Context, src string) (safety string, err error) {
	defer observe(ctx, s.observer, "restore", time.Now().UTC(), map[string]any{"source": src}, &err)

	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("restore source: %w", err)
	}
	if s.dbPath == db.MemoryPath {
		safety = filepath.Join(s.backupDir, "memory"+SafetySuffix)
	} else {
		safety = s.dbPath + SafetySuffix
	}
	if err := os.Remove(safety); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("replacing previous safety copy: %w", err)
	}
	if err := db.VacuumInto(ctx, s.database, safety); err != nil {
		return "", fmt.Errorf("saving safety copy: %w", err)
	}
	if err := db.RestoreFrom(ctx, s.database, src); err != nil {
		return safety, err
	}
	return safety, nil
}

func (s *backupService) Prune(ctx context.Context, keep int) (removed []string, err error) {
	defer observe(ctx, s.observer, "prune-backups", time.Now().UTC(), map[string]any{"keep": keep}, &err)

	if keep <= 0 {
		return nil, nil
	}
	backups, err := s.listBackups()
	if err != nil {
		return nil, err
	}
	for i := keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", backups[i].Path, err)
		}
		removed = append(removed, backups[i].Path)
	}
	return removed, nil
}

// listBackups returns the timestamped snapshots in the backup directory,
// newest first. A missing directory holds no backups.
func (s *backupService) listBackups() ([]BackupFile, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	var out []BackupFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}
		st, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BackupFile{
			Path:    filepath.Join(s.backupDir, name),
			Size:    st.Size(),
			ModTime: st.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path > out[j].Path })
	return out, nil
}
