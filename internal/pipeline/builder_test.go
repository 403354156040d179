package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/machine"
	"github.com/norclim/caserig/internal/toolchain"
)

// scriptedRunner simulates the external toolchain: create_newcase makes the
// case directory, case.setup generates user_nl_* files, and every call is
// recorded. failOn makes a single command fail.
type scriptedRunner struct {
	calls      [][]string
	namelists  []string
	failOn     string
	failureErr error
}

func (r *scriptedRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))

	if filepath.Base(name) == r.failOn || name == r.failOn {
		if r.failureErr != nil {
			return r.failureErr
		}
		return errors.New("scripted failure")
	}

	switch {
	case filepath.Base(name) == "create_newcase":
		// args[1] is the --case value.
		if err := os.MkdirAll(args[1], 0o755); err != nil {
			return err
		}
	case name == "./case.setup":
		for _, comp := range r.namelists {
			path := filepath.Join(dir, "user_nl_"+comp)
			if err := os.WriteFile(path, []byte("! generated\n"), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func testMachine(t *testing.T) machine.Machine {
	t.Helper()
	return machine.Machine{
		Name:        "betzy",
		ScriptsRoot: "/opt/cime/scripts",
		CaseRoot:    t.TempDir(),
	}
}

func testRun() *config.RunConfig {
	return &config.RunConfig{
		CaseName:   "2010aer-ON",
		Compset:    "NF2000climo",
		Resolution: "f19_f19_mg17",
		Machine:    "betzy",
		Project:    "nn9188k",
		Schedule: config.Schedule{
			StopOption:   "nyears",
			StopN:        5,
			RunStartDate: "2009-01-01",
			RestOption:   "nyears",
			RestN:        1,
			Wallclock:    "47:00:00",
			Calendar:     "GREGORIAN",
		},
		Namelists: []config.NamelistBlock{
			{Component: "cam", Lines: []string{"ncdata = 'inic.nc'", "use_init_interp = .true."}},
			{Component: "clm", Lines: []string{"fsurdat = 'surf.nc'"}},
		},
	}
}

func TestPlanStepOrder(t *testing.T) {
	b := NewBuilder(toolchain.New(&scriptedRunner{}, "/opt/cime/scripts"), testMachine(t))
	steps := b.Plan(testRun())

	var ids []string
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"scrub",
		"create_newcase",
		"xmlchange STOP_OPTION",
		"xmlchange STOP_N",
		"xmlchange RUN_STARTDATE",
		"xmlchange REST_OPTION",
		"xmlchange REST_N",
		"xmlchange JOB_WALLCLOCK_TIME",
		"xmlchange CALENDAR",
		"case.setup",
		"namelist cam",
		"namelist clm",
	}, ids)
}

func TestPlanExecutesAgainstToolchain(t *testing.T) {
	runner := &scriptedRunner{namelists: []string{"cam", "clm"}}
	m := testMachine(t)
	b := NewBuilder(toolchain.New(runner, m.ScriptsRoot), m)
	run := testRun()

	casePath := b.CasePath(run)
	assert.Equal(t, filepath.Join(m.CaseRoot, "2010aer-ON"), casePath)

	// Stale artifact from a previous run: the scrub step must remove it.
	require.NoError(t, os.MkdirAll(casePath, 0o755))
	stale := filepath.Join(casePath, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	err := NewExecutor(nil).Execute(context.Background(), b.Plan(run))
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale artifacts must not survive the scrub")

	// The toolchain saw create_newcase, seven xmlchange calls, and case.setup.
	require.Len(t, runner.calls, 9)
	assert.Equal(t, []string{
		filepath.Join(m.ScriptsRoot, "create_newcase"),
		"--case", casePath,
		"--compset", "NF2000climo",
		"--res", "f19_f19_mg17",
		"--machine", "betzy",
		"--project", "nn9188k",
		"--run-unsupported",
	}, runner.calls[0])
	assert.Equal(t, []string{"./xmlchange", "STOP_OPTION=nyears"}, runner.calls[1])
	assert.Equal(t, []string{"./xmlchange", "STOP_N=5"}, runner.calls[2])
	assert.Equal(t, []string{"./xmlchange", "RUN_STARTDATE=2009-01-01"}, runner.calls[3])
	assert.Equal(t, []string{"./xmlchange", "JOB_WALLCLOCK_TIME=47:00:00"}, runner.calls[6])
	assert.Equal(t, []string{"./xmlchange", "CALENDAR=GREGORIAN"}, runner.calls[7])
	assert.Equal(t, []string{"./case.setup"}, runner.calls[8])

	// Namelist lines were appended, in order, after setup's generated header.
	camNl, err := os.ReadFile(filepath.Join(casePath, "user_nl_cam"))
	require.NoError(t, err)
	assert.Equal(t, "! generated\nncdata = 'inic.nc'\nuse_init_interp = .true.\n", string(camNl))

	clmNl, err := os.ReadFile(filepath.Join(casePath, "user_nl_clm"))
	require.NoError(t, err)
	assert.Equal(t, "! generated\nfsurdat = 'surf.nc'\n", string(clmNl))
}

func TestPlanFailedCreateSkipsUpdates(t *testing.T) {
	runner := &scriptedRunner{failOn: "create_newcase"}
	m := testMachine(t)
	b := NewBuilder(toolchain.New(runner, m.ScriptsRoot), m)

	err := NewExecutor(nil).Execute(context.Background(), b.Plan(testRun()))
	require.Error(t, err)
	assert.ErrorContains(t, err, `step "create_newcase" failed`)

	// Only the create call reached the toolchain; no xmlchange ran.
	assert.Len(t, runner.calls, 1)
}

func TestPlanIsIdempotent(t *testing.T) {
	runner := &scriptedRunner{namelists: []string{"cam", "clm"}}
	m := testMachine(t)
	b := NewBuilder(toolchain.New(runner, m.ScriptsRoot), m)
	run := testRun()

	require.NoError(t, NewExecutor(nil).Execute(context.Background(), b.Plan(run)))
	firstNl, err := os.ReadFile(filepath.Join(b.CasePath(run), "user_nl_cam"))
	require.NoError(t, err)

	// Second run scrubs and rebuilds; the final state is identical.
	require.NoError(t, NewExecutor(nil).Execute(context.Background(), b.Plan(run)))
	secondNl, err := os.ReadFile(filepath.Join(b.CasePath(run), "user_nl_cam"))
	require.NoError(t, err)

	assert.Equal(t, string(firstNl), string(secondNl))
}
