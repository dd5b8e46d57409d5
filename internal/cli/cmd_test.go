package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/clientpro/internal/config"
	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is Wednesday 15 January 2025, 10:00.
var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

// testApp wires a full App over a SQLite file in a temp dir, so backups
// work as well as the regular services.
func testApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "clientpro.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	clients := repository.NewSQLiteClientRepo(database)
	interventions := repository.NewSQLiteInterventionRepo(database)
	uow := testutil.NewTestUoW(database)

	cfg := config.DefaultConfig()
	cfg.Database.Path = dbPath
	cfg.Backup.Dir = filepath.Join(dir, "backups")

	return &App{
		Clients:       service.NewClientService(clients, uow),
		Interventions: service.NewInterventionService(interventions, uow),
		Calendar:      service.NewCalendarService(interventions, scheduler.HourRange{First: cfg.Display.FirstHour, Last: cfg.Display.LastHour}),
		Status:        service.NewStatusService(clients, interventions),
		Reports:       service.NewReportService(interventions),
		Backups:       service.NewBackupService(database, dbPath, cfg.Backup.Dir, clients, interventions),
		Export:        service.NewExportService(interventions),
		Config:        cfg,
		Now:           func() time.Time { return fixedNow },
	}
}

// seedClient stores a client and returns it.
func seedClient(t *testing.T, app *App, name string, opts ...testutil.ClientOption) *domain.Client {
	t.Helper()
	c := testutil.NewTestClient(name, opts...)
	require.NoError(t, app.Clients.Create(context.Background(), c))
	return c
}

// seedIntervention stores an intervention and returns its save result.
func seedIntervention(t *testing.T, app *App, clientID, numero, date string, opts ...testutil.InterventionOption) *service.SaveResult {
	t.Helper()
	res, err := app.Interventions.Create(context.Background(), testutil.NewTestIntervention(clientID, numero, date, opts...))
	require.NoError(t, err)
	return res
}

// executeCmd runs a cobra command and captures stdout/stderr without styling.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.Strip(buf.String()), err
}

// --- client ---

func TestClientAdd_DefaultsToIndividual(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "client", "add", "--name", "Jean Dupont", "--phone", "0601020304", "--city", "Lyon")
	require.NoError(t, err)
	assert.Contains(t, out, "Created client Jean Dupont")

	clients, err := app.Clients.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, domain.ClientIndividual, clients[0].Kind)
	assert.Equal(t, "Lyon", clients[0].City)
}

func TestClientAdd_RequiresName(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "client", "add", "--city", "Lyon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestClientAdd_AcceptsAccentFreeKind(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "client", "add", "--name", "Garage Martin", "--kind", "PROFESSIONNEL")
	require.NoError(t, err)

	c, err := app.Clients.Resolve(context.Background(), "Garage Martin")
	require.NoError(t, err)
	assert.Equal(t, domain.ClientProfessional, c.Kind)
}

func TestClientList_HidesInactiveUnlessAll(t *testing.T) {
	app := testApp(t)
	seedClient(t, app, "Alice")
	bob := seedClient(t, app, "Bob")
	require.NoError(t, app.Clients.Delete(context.Background(), bob.ID, false))

	out, err := executeCmd(t, app, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Bob")

	out, err = executeCmd(t, app, "client", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob (inactive)")
}

func TestClientUpdate_OnlyTouchesChangedFlags(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice", testutil.WithEmail("alice@example.com"))

	_, err := executeCmd(t, app, "client", "update", c.ID, "--city", "Paris")
	require.NoError(t, err)

	got, err := app.Clients.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.City)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.Active)
}

func TestClientRemove_SoftByDefault(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")

	out, err := executeCmd(t, app, "client", "remove", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")

	got, err := app.Clients.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

// --- intervention ---

func TestInterventionAdd_WarnsOnOverlapButSaves(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))

	out, err := executeCmd(t, app, "intervention", "add",
		"--client", "Alice", "--date", "2025-01-15", "--start", "09:30", "--end", "11:00",
		"--payment", "gratuit", "--summary", "Réinstallation")
	require.NoError(t, err)
	assert.Contains(t, out, "INT-002")
	assert.Contains(t, out, "Overlaps with INT-001 (09:00-10:00)")

	it, err := app.Interventions.GetByNumero(context.Background(), "INT-002")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFree, it.Payment)
	assert.Equal(t, "Réinstallation", it.Summary)
}

func TestInterventionAdd_TouchingSlotsDoNotWarn(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))

	out, err := executeCmd(t, app, "intervention", "add",
		"--client", "Alice", "--date", "2025-01-15", "--start", "10:00", "--end", "11:00")
	require.NoError(t, err)
	assert.NotContains(t, out, "Overlaps")
}

func TestInterventionAdd_RejectsBadTime(t *testing.T) {
	app := testApp(t)
	seedClient(t, app, "Alice")

	_, err := executeCmd(t, app, "intervention", "add", "--client", "Alice", "--date", "2025-01-15", "--start", "9:00", "--end", "10:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidTimeFormat.Error())
}

func TestInterventionAdd_TodayKeyword(t *testing.T) {
	app := testApp(t)
	seedClient(t, app, "Alice")

	_, err := executeCmd(t, app, "intervention", "add", "--client", "Alice", "--date", "today", "--numero", "int-010")
	require.NoError(t, err)

	it, err := app.Interventions.GetByNumero(context.Background(), "INT-010")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", it.Date)
	assert.True(t, it.IsAllDay())
}

func TestInterventionCheck(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))

	out, err := executeCmd(t, app, "intervention", "check", "--date", "2025-01-15", "--start", "09:15", "--end", "09:45")
	require.NoError(t, err)
	assert.Contains(t, out, "Overlaps with INT-001 (09:00-10:00)")

	out, err = executeCmd(t, app, "intervention", "check", "--date", "2025-01-15", "--start", "09:15", "--end", "09:45", "--exclude", "INT-001")
	require.NoError(t, err)
	assert.Contains(t, out, "No overlap on 15/01/2025")
}

func TestInterventionList_Filters(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-10", testutil.WithDone(), testutil.WithPayment(domain.PaymentPaid))
	seedIntervention(t, app, c.ID, "INT-002", "2025-01-12")

	out, err := executeCmd(t, app, "intervention", "list", "--filter", "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "INT-002")
	assert.NotContains(t, out, "INT-001")

	out, err = executeCmd(t, app, "intervention", "list", "-f", "done", "--client", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "INT-001")
	assert.NotContains(t, out, "INT-002")
}

func TestInterventionDone_Toggles(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-10")

	_, err := executeCmd(t, app, "intervention", "done", "INT-001")
	require.NoError(t, err)
	it, err := app.Interventions.GetByNumero(context.Background(), "INT-001")
	require.NoError(t, err)
	assert.True(t, it.Done)

	_, err = executeCmd(t, app, "intervention", "done", "INT-001", "--undo")
	require.NoError(t, err)
	it, err = app.Interventions.GetByNumero(context.Background(), "INT-001")
	require.NoError(t, err)
	assert.False(t, it.Done)
}

func TestInterventionUpdate_AllDayExcludesTimes(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-10", testutil.WithTimes("09:00", "10:00"))

	_, err := executeCmd(t, app, "intervention", "update", "INT-001", "--all-day", "--start", "08:00")
	require.Error(t, err)

	_, err = executeCmd(t, app, "intervention", "update", "INT-001", "--all-day")
	require.NoError(t, err)
	it, err := app.Interventions.GetByNumero(context.Background(), "INT-001")
	require.NoError(t, err)
	assert.True(t, it.IsAllDay())
}

func TestInterventionNextNumero(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-007", "2025-01-10")

	out, err := executeCmd(t, app, "intervention", "next-numero")
	require.NoError(t, err)
	assert.Equal(t, "INT-008", strings.TrimSpace(out))
}

// --- calendar, status, report ---

func TestCalendar_ShowsCurrentWeek(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))
	seedIntervention(t, app, c.ID, "INT-002", "2025-01-22", testutil.WithTimes("09:00", "10:00"))

	out, err := executeCmd(t, app, "week", "--width", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "Week of 13/01/2025")
	assert.Contains(t, out, "INT-001")
	assert.NotContains(t, out, "INT-002")
	assert.Contains(t, out, "1 interventions this week")

	out, err = executeCmd(t, app, "calendar", "--offset", "1", "--width", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "INT-002")
}

func TestCalendar_DateAndMonthExclusive(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "calendar", "--date", "2025-01-15", "--month", "2")
	require.Error(t, err)
}

func TestStatus_ShowsTodayAndWarnings(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))
	seedIntervention(t, app, c.ID, "INT-002", "2025-01-15", testutil.WithTimes("09:30", "10:30"))

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "CLIENTPRO · 15/01/2025")
	assert.Contains(t, out, "1 clients")
	assert.Contains(t, out, "INT-001")
	assert.Contains(t, out, "INT-002")
}

func TestReport_CustomRangeNeedsBothEnds(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "report", "--from", "2025-01-01")
	require.Error(t, err)
}

func TestReport_MonthTotals(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-03", testutil.WithPayment(domain.PaymentPaid), testutil.WithDone())
	seedIntervention(t, app, c.ID, "INT-002", "2025-01-20")
	seedIntervention(t, app, c.ID, "INT-003", "2024-12-20")

	out, err := executeCmd(t, app, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "REPORT 01/01/2025 → 15/01/2025")
	assert.Contains(t, out, "1. Alice")
}

// --- export ---

func TestExportICS_ToFile(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"))
	seedIntervention(t, app, c.ID, "INT-002", "2025-06-15")

	path := filepath.Join(t.TempDir(), "clientpro.ics")
	out, err := executeCmd(t, app, "export", "ics", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 interventions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "INT-001")
	assert.NotContains(t, string(data), "INT-002")
}

func TestExportICS_Stdout(t *testing.T) {
	app := testApp(t)
	c := seedClient(t, app, "Alice")
	seedIntervention(t, app, c.ID, "INT-001", "2025-02-01")

	out, err := executeCmd(t, app, "export", "ics", "--from", "2025-02-01", "--to", "2025-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VEVENT")
}

func TestDefaultExportRange(t *testing.T) {
	from, to := defaultExportRange(testApp(t))
	assert.Equal(t, "2025-01-01", from)
	assert.Equal(t, "2025-03-31", to)
}

// --- backup ---

func TestBackupCreateAndInfo(t *testing.T) {
	app := testApp(t)
	seedClient(t, app, "Alice")

	out, err := executeCmd(t, app, "backup", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to")

	out, err = executeCmd(t, app, "backup", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Clients")
	assert.NotContains(t, out, "No backups yet.")
}

func TestScheduleBackups_RejectsBadSpec(t *testing.T) {
	app := testApp(t)
	err := scheduleBackups(context.Background(), app, "every tuesday", 0, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestScheduleBackups_ReturnsWhenCancelled(t *testing.T) {
	app := testApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, scheduleBackups(ctx, app, "0 2 * * *", 3, &out))
	assert.Contains(t, ansi.Strip(out.String()), `Scheduled backups "0 2 * * *"`)
}

func TestRunScheduledBackup_WritesAndPrunes(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	runScheduledBackup(context.Background(), app, 1, &out)
	assert.Contains(t, ansi.Strip(out.String()), "Backup written to")

	info, err := app.Backups.Info(context.Background())
	require.NoError(t, err)
	assert.Len(t, info.Backups, 1)
}
