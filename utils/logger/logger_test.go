package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type named struct{}

func (named) String() string { return "demuxer" }

type plain struct{}

func TestObjToString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NIL", objToString(nil))
	require.Equal(t, "demuxer", objToString(named{}))
	require.Equal(t, "file.av3a", objToString("file.av3a"))
	require.Equal(t, "plain", objToString(&plain{}))
	require.Equal(t, "0123456789abcdefghij", objToString("0123456789abcdefghijklmnop"))
}

//nolint:paralleltest // mutates the global logger
func TestLevels(t *testing.T) {
	out := logrus.StandardLogger().Out
	buf := new(bytes.Buffer)
	logrus.SetOutput(buf)
	defer logrus.SetOutput(out)

	Init(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	Debugf(named{}, "frame %d", 1)
	require.Empty(t, buf.String())

	Warningf(named{}, "frame %d truncated", 2)
	require.Contains(t, buf.String(), "level=warning")
	require.Contains(t, buf.String(), "demuxer")
	require.Contains(t, buf.String(), "frame 2 truncated")
}

//nolint:paralleltest // mutates the environment and the global logger
func TestInitFromEnv(t *testing.T) {
	t.Setenv("VIVID_TEST_LOG_LEVEL", "debug")
	require.Equal(t, logrus.DebugLevel, InitFromEnv("VIVID_TEST_LOG_LEVEL", logrus.InfoLevel))
	require.True(t, logrus.IsLevelEnabled(logrus.DebugLevel))

	t.Setenv("VIVID_TEST_LOG_LEVEL", "loud")
	require.Equal(t, logrus.WarnLevel, InitFromEnv("VIVID_TEST_LOG_LEVEL", logrus.WarnLevel))

	Init(logrus.InfoLevel)
}
