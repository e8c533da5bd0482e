package node

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/e32.go/pkg/e32/link"
)

func TestLoadLinkDefaults(t *testing.T) {
	conf := &Config{}
	cfg, err := conf.LoadLink()
	require.NoError(t, err)
	require.Equal(t, link.MustBuild(link.DefaultOptions()), cfg)
}

func TestLoadLinkFileAndRole(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "node.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("deviceId: 9\ntransmissionMode: transparent\n"), 0644))

	conf := &Config{LinkFile: fn, Role: "rx"}
	cfg, err := conf.LoadLink()
	require.NoError(t, err)
	require.Equal(t, link.Receiver, cfg.Role())
	require.Equal(t, uint8(9), cfg.DeviceID())
	require.Equal(t, 64, cfg.EffectivePayloadCapacity())
}

func TestLoadLinkErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := (&Config{LinkFile: filepath.Join(dir, "missing.yaml")}).LoadLink()
	require.Error(t, err)

	_, err = (&Config{Role: "both"}).LoadLink()
	var nameErr *link.UnknownEnumNameError
	require.ErrorAs(t, err, &nameErr)

	fn := filepath.Join(dir, "big.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("packetPayloadBytes: 62\n"), 0644))
	_, err = (&Config{LinkFile: fn}).LoadLink()
	var capErr *link.PayloadExceedsCapacityError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, 61, capErr.Limit)
}

func TestNewConfigCopiesDefault(t *testing.T) {
	conf := NewConfig()
	conf.Role = "rx"
	require.NotEqual(t, "rx", Default().Role)
}

func TestRegistryRequired(t *testing.T) {
	conf := &Config{}
	_, err := conf.NewDiscoverer()
	require.Error(t, err)
	_, err = conf.NewAnnouncer(link.MustBuild(link.DefaultOptions()))
	require.Error(t, err)
}
