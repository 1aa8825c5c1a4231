package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("HUH_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HUH_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(500, cfg.Game.StartingChips)
	a.Equal(5, cfg.Game.SmallBlind)

	// ensure that it's only loaded once
	_ = os.Setenv("HUH_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("HUH_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()
	config = Config{}

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Equal(t, 10, cfg.Game.SmallBlind)
	assert.Equal(t, 20, cfg.Game.BigBlind)
	assert.True(t, cfg.Game.Rebuy)
}
