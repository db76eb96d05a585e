package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 6379, config.Port)
	assert.Equal(t, 7379, config.HealthPort)
	assert.Equal(t, 100, config.CleanupInterval)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeConfig(t, "port: 7000\ncleanup_interval_ms: 250\ndebug: true\nlog_file: /tmp/x.log\n")
	config, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, config.Port)
	assert.Equal(t, 8000, config.HealthPort)
	assert.Equal(t, 250, config.CleanupInterval)
	assert.True(t, config.Debug)
	assert.Equal(t, "/tmp/x.log", config.LogFile)
}

func TestLoadConfigRejects(t *testing.T) {
	_, err := loadConfigFromFile(writeConfig(t, "port: [1, 2]\n"))
	assert.Error(t, err)

	_, err = loadConfigFromFile(writeConfig(t, "port: 7000\nhealth_port: 7000\n"))
	assert.ErrorContains(t, err, "health_port")

	_, err = loadConfigFromFile(writeConfig(t, "port: 70000\n"))
	assert.ErrorContains(t, err, "out of range")
}

func TestToInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int8(-3), -3},
		{uint16(500), 500},
		{int64(1 << 40), 1 << 40},
		{uint64(7), 7},
		{float64(12), 12},
		{"-42", -42},
	}
	for _, c := range cases {
		got, err := ToInt(c.in)
		require.NoError(t, err, "%T", c.in)
		assert.Equal(t, c.want, got)
	}

	for _, bad := range []interface{}{"x", 1.5, uint64(1 << 63), nil, []byte("1")} {
		_, err := ToInt(bad)
		assert.Error(t, err, "%#v", bad)
	}
}

func TestRequestDecoderIsLoose(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[string]interface{}{"command": "LRANGE", "start": int8(1)}))
	require.NoError(t, enc.Encode(map[string]interface{}{"command": "PING"}))

	dec := NewRequestDecoder(&buf)
	var first, second map[string]interface{}
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, int64(1), first["start"])
	assert.Equal(t, "PING", second["command"])
}

func TestEncodeDecode(t *testing.T) {
	data, err := EncodeResponse(map[string]interface{}{"status": "OK"})
	require.NoError(t, err)
	decoded, err := DecodeRequest(data)
	require.NoError(t, err)
	assert.Equal(t, "OK", decoded["status"])
}

func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger := NewLogger(path, false)
	require.Same(t, logger, GetLogger())

	logger.Info("hello")
	logger.Debugf("value %d", 7)
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] ")
	assert.Contains(t, string(data), "value 7")
}
