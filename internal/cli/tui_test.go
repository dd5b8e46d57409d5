package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededTUI(t *testing.T) (*TestDriver, *App, *domain.Client) {
	t.Helper()
	app := testApp(t)
	alice := seedClient(t, app, "Alice Martin", testutil.WithPhone("0601020304"), testutil.WithCity("Lyon", "69001"))
	seedClient(t, app, "Bob Durand", testutil.WithEmail("bob@example.com"))
	seedIntervention(t, app, alice.ID, "INT-001", "2025-01-15", testutil.WithTimes("09:00", "10:00"), testutil.WithSummary("Imprimante"))
	return NewTestDriver(t, app), app, alice
}

func TestTUI_DashboardShowsToday(t *testing.T) {
	d, _, _ := seededTUI(t)

	assert.Equal(t, []ViewID{ViewDashboard}, d.ViewStackIDs())
	screen := d.Screen()
	assert.Contains(t, screen, "TODAY")
	assert.Contains(t, screen, "INT-001")
	assert.Contains(t, screen, "Alice Martin")
	assert.Contains(t, screen, "clients")
}

func TestTUI_DashboardEmpty(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	assert.Contains(t, d.Screen(), "Nothing scheduled today.")
}

func TestTUI_DashboardEnterShowsDetail(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressEnter()
	assert.Contains(t, d.LastOutput(), "Imprimante")

	d.PressEsc()
	assert.Empty(t, d.LastOutput())
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_GlobalJumpsReplaceTheStack(t *testing.T) {
	d, _, _ := seededTUI(t)

	d.PressKey('C')
	assert.Equal(t, []ViewID{ViewDashboard, ViewClientList}, d.ViewStackIDs())
	d.PressKey('W')
	assert.Equal(t, []ViewID{ViewDashboard, ViewWeek}, d.ViewStackIDs())
	d.PressKey('I')
	assert.Equal(t, []ViewID{ViewDashboard, ViewInterventionList}, d.ViewStackIDs())

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewDashboard}, d.ViewStackIDs())
}

func TestTUI_QuitKey(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('q')
	assert.True(t, d.IsQuitting())
}

func TestTUI_HelpBox(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('?')
	assert.Contains(t, d.LastOutput(), "week calendar")
}

// --- client list ---

func TestTUI_ClientListFilter(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('C')
	screen := d.Screen()
	assert.Contains(t, screen, "Alice Martin")
	assert.Contains(t, screen, "Bob Durand")

	d.PressKey('/')
	d.Type("dur")
	screen = d.Screen()
	assert.Contains(t, screen, "Bob Durand")
	assert.NotContains(t, screen, "Alice Martin")

	// q is typed into the filter while it captures input.
	d.PressKey('q')
	assert.False(t, d.IsQuitting())
	assert.Contains(t, d.Screen(), "No client matches the filter.")

	d.PressEsc()
	assert.Contains(t, d.Screen(), "Alice Martin")
	assert.Equal(t, ViewClientList, d.ActiveViewID())
}

func TestTUI_ClientFilterIgnoresAccents(t *testing.T) {
	app := testApp(t)
	seedClient(t, app, "Hélène Lefèvre")
	seedClient(t, app, "Marc Petit")
	d := NewTestDriver(t, app)

	d.PressKey('C')
	d.PressKey('/')
	d.Type("helene")
	d.PressEnter()
	screen := d.Screen()
	assert.Contains(t, screen, "Hélène Lefèvre")
	assert.NotContains(t, screen, "Marc Petit")
}

func TestTUI_ClientEnterScopesInterventions(t *testing.T) {
	d, _, alice := seededTUI(t)
	d.PressKey('C')
	d.PressEnter()

	assert.Equal(t, []ViewID{ViewDashboard, ViewClientList, ViewInterventionList}, d.ViewStackIDs())
	assert.Equal(t, alice.ID, d.State().ActiveClientID)
	screen := d.Screen()
	assert.Contains(t, screen, "INT-001")
	assert.Contains(t, screen, "[Alice Martin]")
}

func TestTUI_ClientCopyContact(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('C')
	d.PressKey('y')
	assert.Equal(t, []string{"0601020304"}, d.Copied())
	assert.Contains(t, d.LastOutput(), "Copied 0601020304")

	d.PressEsc()
	d.PressDown()
	d.PressKey('y')
	assert.Equal(t, []string{"0601020304", "bob@example.com"}, d.Copied())
}

func TestTUI_ClientDeactivateOpensConfirm(t *testing.T) {
	d, app, alice := seededTUI(t)
	d.PressKey('C')
	d.PressKey('x')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, ViewClientList, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "Cancelled.")

	got, err := app.Clients.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

// --- intervention list ---

func TestTUI_InterventionFilterTabs(t *testing.T) {
	d, app, alice := seededTUI(t)
	seedIntervention(t, app, alice.ID, "INT-002", "2025-01-10", testutil.WithDone(), testutil.WithPayment(domain.PaymentPaid))

	d.PressKey('I')
	screen := d.Screen()
	assert.Contains(t, screen, "INT-001")
	assert.Contains(t, screen, "INT-002")

	d.PressTab() // todo
	screen = d.Screen()
	assert.Contains(t, screen, "[todo]")
	assert.Contains(t, screen, "INT-001")
	assert.NotContains(t, screen, "INT-002")

	d.PressTab() // done
	screen = d.Screen()
	assert.Contains(t, screen, "INT-002")
	assert.NotContains(t, screen, "INT-001")

	d.PressShiftTab()
	d.PressShiftTab()
	assert.Contains(t, d.Screen(), "[all]")
}

func TestTUI_InterventionSearch(t *testing.T) {
	d, app, alice := seededTUI(t)
	seedIntervention(t, app, alice.ID, "INT-002", "2025-01-10", testutil.WithSummary("Box internet"))

	d.PressKey('I')
	d.PressKey('/')
	d.Type("box")
	d.PressEnter()
	screen := d.Screen()
	assert.Contains(t, screen, "INT-002")
	assert.NotContains(t, screen, "INT-001")
}

func TestTUI_InterventionToggleDone(t *testing.T) {
	d, app, _ := seededTUI(t)
	d.PressKey('I')
	d.PressKey('d')

	assert.Contains(t, d.LastOutput(), "INT-001 marked done")
	it, err := app.Interventions.GetByNumero(context.Background(), "INT-001")
	require.NoError(t, err)
	assert.True(t, it.Done)
}

func TestTUI_InterventionCyclePayment(t *testing.T) {
	d, app, _ := seededTUI(t)
	d.PressKey('I')
	d.PressKey('p')

	it, err := app.Interventions.GetByNumero(context.Background(), "INT-001")
	require.NoError(t, err)
	assert.Equal(t, nextPayment(domain.PaymentUnpaid), it.Payment)
	assert.Contains(t, d.LastOutput(), "INT-001 payment set to")
}

func TestTUI_InterventionAddOpensForm(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('I')
	d.PressKey('a')
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "New Intervention", d.ActiveView().Title())

	d.PressEsc()
	assert.Equal(t, ViewInterventionList, d.ActiveViewID())
}

// --- week ---

func TestTUI_WeekPaging(t *testing.T) {
	d, app, alice := seededTUI(t)
	seedIntervention(t, app, alice.ID, "INT-002", "2025-01-21", testutil.WithTimes("14:00", "15:00"))

	d.PressKey('W')
	screen := d.Screen()
	assert.Contains(t, screen, "Week of 13/01/2025")
	assert.Contains(t, screen, "INT-001")

	d.PressKey('l')
	screen = d.Screen()
	assert.Contains(t, screen, "Week of 20/01/2025")
	assert.Contains(t, screen, "INT-002")

	d.PressKey('h')
	d.PressKey('h')
	assert.Contains(t, d.Screen(), "Week of 06/01/2025")

	d.PressKey('t')
	assert.Contains(t, d.Screen(), "Week of 13/01/2025")
}

// --- command bar ---

func TestTUI_CommandRunsCobra(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.Command("client list")

	assert.False(t, d.CmdBarFocused())
	assert.Contains(t, d.LastOutput(), "Alice Martin")
	assert.Contains(t, d.LastOutput(), "Bob Durand")
}

func TestTUI_CommandQuotedArgs(t *testing.T) {
	d, app, _ := seededTUI(t)
	d.Command(`client add --name "Claire Petit" --city Paris`)

	assert.Contains(t, d.LastOutput(), "Created client Claire Petit")
	c, err := app.Clients.Resolve(context.Background(), "Claire Petit")
	require.NoError(t, err)
	assert.Equal(t, "Paris", c.City)
}

func TestTUI_CommandMutationRefreshesViews(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.PressKey('I')
	d.Command("intervention done INT-001")
	d.PressEsc() // dismiss output

	assert.Contains(t, d.Screen(), "Done")
}

func TestTUI_CommandNavigationVerbs(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.Command("clients")
	assert.Equal(t, ViewClientList, d.ActiveViewID())
	d.Command("week")
	assert.Equal(t, ViewWeek, d.ActiveViewID())
	d.Command("new-client")
	assert.Equal(t, ViewForm, d.ActiveViewID())
}

func TestTUI_CommandUnknownSuggests(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.Command("stauts")
	out := d.LastOutput()
	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "status")
}

func TestTUI_CommandExit(t *testing.T) {
	d, _, _ := seededTUI(t)
	d.Command("exit")
	assert.True(t, d.IsQuitting())
}
