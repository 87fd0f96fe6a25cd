package assets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/testutil"
)

const clientLogConfig = `<?xml version="1.0" encoding="UTF-8"?>
<Configuration status="WARN">
    <Appenders>
        <Console name="SysOut" target="SYSTEM_OUT">
            <XMLLayout />
        </Console>
        <RollingRandomAccessFile name="File" fileName="logs/latest.log" filePattern="logs/%d{yyyy-MM-dd}-%i.log.gz">
            <PatternLayout pattern="[%d{HH:mm:ss}] [%t/%level]: %msg%n" />
        </RollingRandomAccessFile>
    </Appenders>
    <Loggers>
        <Logger name="net.minecraft" level="info"/>
        <Root level="info">
            <AppenderRef ref="SysOut"/>
            <AppenderRef ref="File"/>
        </Root>
    </Loggers>
</Configuration>`

func TestInspectLoggingConfig(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)
	path := g.WriteLoggingConfig("client-1.12.xml", clientLogConfig)

	cfg, err := assets.InspectLoggingConfig(g.FS, path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Status)
	assert.Equal(t, "info", cfg.RootLevel)
	assert.Equal(t, []string{"net.minecraft"}, cfg.Loggers)
	assert.Equal(t, []assets.Appender{
		{Type: "Console", Name: "SysOut"},
		{Type: "RollingRandomAccessFile", Name: "File"},
	}, cfg.Appenders)
}

func TestInspectLoggingConfigErrors(t *testing.T) {
	g := testutil.NewGameRoot(t, testutil.EnvMemoryOnly)

	_, err := assets.InspectLoggingConfig(g.FS, g.Paths.LoggingConfigFile("absent.xml"))
	assert.True(t, errors.IsNotFound(err))

	bad := g.WriteLoggingConfig("bad.xml", "<Configuration status=></Configuration>")
	_, err = assets.InspectLoggingConfig(g.FS, bad)
	assert.True(t, errors.IsParse(err))

	other := g.WriteLoggingConfig("other.xml", "<log4j:configuration/>")
	_, err = assets.InspectLoggingConfig(g.FS, other)
	assert.True(t, errors.IsParse(err))
}
