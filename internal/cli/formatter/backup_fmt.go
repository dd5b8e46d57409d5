package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/dustin/go-humanize"
)

// FormatBackupInfo renders the database location, size, counts and the
// existing backups, newest first.
func FormatBackupInfo(info *service.BackupInfo) string {
	var b strings.Builder
	b.WriteString(Header("Database"))
	b.WriteString("\n")
	b.WriteString(Field("Path", info.DBPath))
	b.WriteString(Field("Size", info.Size))
	b.WriteString(Field("Clients", fmt.Sprintf("%d", info.Clients)))
	b.WriteString(Field("Interventions", fmt.Sprintf("%d", info.Interventions)))
	b.WriteString(Field("Backup dir", info.BackupDir))

	b.WriteString("\n")
	if len(info.Backups) == 0 {
		b.WriteString(Dim("  No backups yet.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(info.Backups))
	for _, f := range info.Backups {
		rows = append(rows, []string{
			filepath.Base(f.Path),
			humanize.Bytes(uint64(f.Size)),
			Dim(humanize.Time(f.ModTime)),
		})
	}
	b.WriteString(RenderTable([]string{"FILE", "SIZE", "TAKEN"}, rows))
	return b.String()
}
