package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/demos"
	"github.com/aretw0/turing/pkg/domain"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TURING_CONFIG", "")
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

const translatorCSV = `lhs_state,input,rhs_state,replacement,direction
q0,a,q0,b,R
q0,b,q0,b,R
q0,□,q1,□,L
`

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)

	tests := []struct {
		name  string
		apply func(cfg *config.Config, dir string)
		demos bool
	}{
		{name: "Memory", apply: func(cfg *config.Config, dir string) {}, demos: true},
		{name: "File", apply: func(cfg *config.Config, dir string) {
			cfg.Store.Backend = config.BackendFile
			cfg.Store.Path = dir
		}},
		{name: "Bolt", apply: func(cfg *config.Config, dir string) {
			cfg.Store.Backend = config.BackendBolt
			cfg.Store.Path = filepath.Join(dir, "nested", "machines")
		}},
		{name: "Redis", apply: func(cfg *config.Config, dir string) {
			cfg.Store.Backend = config.BackendRedis
			cfg.Store.Redis.Addr = mr.Addr()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			tt.apply(&cfg, t.TempDir())

			store, closeStore, err := cli.OpenStore(ctx, cfg, logging.NewNop())
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeStore()) }()

			names, err := store.List(ctx)
			require.NoError(t, err)
			if tt.demos {
				assert.Len(t, names, demos.Count())
				assert.Contains(t, names, "translator")
				return
			}

			d, err := demos.Get(0)
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, d.Machine))
			got, err := store.Load(ctx, "translator")
			require.NoError(t, err)
			assert.Equal(t, d.Machine.Table, got.Table)
		})
	}
}

func TestOpenStore_RedisUnavailable(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Store.Backend = config.BackendRedis
	cfg.Store.Redis.Addr = "127.0.0.1:1"

	_, _, err := cli.OpenStore(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "connect to redis")
}

func TestResolveMachine(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	store, _, err := cli.OpenStore(ctx, cfg, logging.NewNop())
	require.NoError(t, err)

	m, err := cli.ResolveMachine(ctx, store, "anbn", "")
	require.NoError(t, err)
	assert.Equal(t, "anbn", m.Name)

	path := testutils.WriteFile(t, "flip.yaml", `
tracks: 1
initial: q0
final: [q1]
transitions:
  - "(q0,0)=(q0,1,R)"
  - "(q0,blank)=(q1,blank,L)"
`)
	m, err = cli.ResolveMachine(ctx, store, path, "")
	require.NoError(t, err)
	assert.Equal(t, "flip", m.Name)

	_, err = cli.ResolveMachine(ctx, store, "nope", "")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestRunCSV_Flags(t *testing.T) {
	cfg := baseConfig(t)
	path := testutils.WriteFile(t, "translator.csv", translatorCSV)

	var out bytes.Buffer
	r := cli.NewRunner(cfg, logging.NewNop(), strings.NewReader("aab\nn\n"), &out, false)

	err := cli.RunCSV(context.Background(), r, path, cli.CSVOptions{
		Tracks:  1,
		Initial: "q0",
		Final:   []string{"q1", "q9"},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Loaded 3 transitions from translator.csv")
	assert.Contains(t, text, "Ignoring final states not used by any transition: q9")
	assert.Contains(t, text, "Success")
}

func TestRunCSV_BlankAlias(t *testing.T) {
	cfg := baseConfig(t)
	path := testutils.WriteFile(t, "aliased.csv", "lhs_state,input,rhs_state,replacement,direction\nq0,a,q0,b,R\nq0,_,q1,_,L\n")
	ctx := context.Background()

	var out bytes.Buffer
	r := cli.NewRunner(cfg, logging.NewNop(), strings.NewReader("aa\nn\n"), &out, false)
	require.NoError(t, cli.RunCSV(ctx, r, path, cli.CSVOptions{Tracks: 1, Initial: "q0", Final: []string{"q1"}, Alias: "_"}))
	assert.Contains(t, out.String(), "Success")

	// Without the option the underscore is an ordinary symbol.
	out.Reset()
	r = cli.NewRunner(cfg, logging.NewNop(), strings.NewReader("aa\nn\n"), &out, false)
	require.NoError(t, cli.RunCSV(ctx, r, path, cli.CSVOptions{Tracks: 1, Initial: "q0", Final: []string{"q1"}}))
	assert.Contains(t, out.String(), "Failure")
}

func TestRunCSV_Prompts(t *testing.T) {
	cfg := baseConfig(t)
	path := testutils.WriteFile(t, "translator.csv", translatorCSV)

	var out bytes.Buffer
	in := strings.NewReader("1\nq0\nq1\nEND\nab\nn\n")
	r := cli.NewRunner(cfg, logging.NewNop(), in, &out, false)

	require.NoError(t, cli.RunCSV(context.Background(), r, path, cli.CSVOptions{}))
	assert.Contains(t, out.String(), "Success")
}

func TestRunCSV_Errors(t *testing.T) {
	cfg := baseConfig(t)
	ctx := context.Background()
	r := cli.NewRunner(cfg, logging.NewNop(), strings.NewReader(""), &bytes.Buffer{}, false)

	bad := testutils.WriteFile(t, "bad.csv", "from,read,to,write,move\n")
	assert.ErrorIs(t, cli.RunCSV(ctx, r, bad, cli.CSVOptions{Tracks: 1}), domain.ErrInvalidHeader)

	wide := testutils.WriteFile(t, "wide.csv", "lhs_state,input,rhs_state,replacement,direction\nq0,ab,q1,ab,R\n")
	assert.ErrorIs(t, cli.RunCSV(ctx, r, wide, cli.CSVOptions{Tracks: 1, Initial: "q0"}), domain.ErrSymbolWidth)

	good := testutils.WriteFile(t, "good.csv", translatorCSV)
	assert.ErrorIs(t, cli.RunCSV(ctx, r, good, cli.CSVOptions{Tracks: 1, Initial: "q7"}), domain.ErrInvalidState)

	assert.Error(t, cli.RunCSV(ctx, r, filepath.Join(t.TempDir(), "missing.csv"), cli.CSVOptions{}))
}

func TestRunDemo(t *testing.T) {
	cfg := baseConfig(t)

	var out bytes.Buffer
	r := cli.NewRunner(cfg, logging.NewNop(), strings.NewReader("aabb\nn\n"), &out, false)

	require.NoError(t, cli.RunDemo(context.Background(), r, 1))
	assert.Contains(t, out.String(), "Demo 1: anbn")
	assert.Contains(t, out.String(), "Success")

	assert.Error(t, cli.RunDemo(context.Background(), r, 99))
}

func TestListDemos(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.ListDemos(&out))
	assert.Equal(t, demos.Count(), strings.Count(out.String(), "\n"))
	assert.Contains(t, out.String(), "4: multiplication")
}

func TestExec(t *testing.T) {
	d, err := demos.Get(0)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := cli.Exec(context.Background(), &out, d.Machine, cli.ExecOptions{
		Tracks: []string{"aab"},
		Trace:  true,
		Graph:  true,
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	text := out.String()
	assert.Equal(t, 5, strings.Count(text, "Current state:"))
	assert.Contains(t, text, "Success")
	assert.Contains(t, text, "Final state: q1")
	assert.Contains(t, text, "Track 1: bbb")
	assert.Contains(t, text, "stateDiagram-v2")
	assert.Contains(t, text, "class q1 current")
}

func TestExec_StepLimit(t *testing.T) {
	d, err := demos.Get(4)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := cli.Exec(context.Background(), &out, d.Machine, cli.ExecOptions{
		Tracks:   []string{"11*11"},
		MaxSteps: 3,
	})
	assert.ErrorIs(t, err, domain.ErrStepLimit)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Steps)
	assert.Contains(t, out.String(), "Failure")

	_, err = cli.Exec(context.Background(), &out, d.Machine, cli.ExecOptions{Tracks: []string{"1", "1"}})
	assert.ErrorIs(t, err, domain.ErrTrackCount)
}
