package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/getlawrence/antiplag/internal/config"
	"github.com/getlawrence/antiplag/internal/detector/commander"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sandbox.Dir = t.TempDir()
	cfg.Checker.Timeout = config.Duration(time.Second)
	delete(cfg.Tools, languages.Java)

	mock := commander.NewMock()
	mock.Responses["sim_c++"] = "a.cpp consists for 75 % of b.cpp material\n"

	e, err := FromConfig(cfg, languages.NewDefaultRegistry(), mock, nil)
	require.NoError(t, err)

	res, err := e.Check(context.Background(), input(languages.CPP, "x"))
	require.NoError(t, err)
	require.NotNil(t, res.UUID)
	assert.Equal(t, "x", *res.UUID)
	assert.InDelta(t, 0.75, res.Percent, 1e-9)

	// java has no preset configured
	_, err = e.Check(context.Background(), input(languages.Java, "x"))
	assert.Equal(t, domain.KindLanguage, domain.KindOf(err))

	res, err = e.Check(context.Background(), domain.CheckInput{
		Lang:       languages.Python,
		RefCode:    "x = 1\n",
		Candidates: []domain.Candidate{{UUID: "p", Code: "x = 1\n"}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Percent, 1e-9)
}

func TestFromConfigMissingSandbox(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sandbox.Dir = filepath.Join(t.TempDir(), "missing")

	_, err := FromConfig(cfg, languages.NewDefaultRegistry(), commander.NewMock(), nil)
	assert.Error(t, err)
}
