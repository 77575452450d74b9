package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key=abc , broken, =x, team=dance ")
	assert.Equal(t, map[string]string{"api-key": "abc", "team": "dance"}, got)
	assert.Nil(t, ParseHeaders(""))
	assert.Nil(t, ParseHeaders(" , ,"))
}

func TestSampleRatio(t *testing.T) {
	cases := map[float64]float64{0: 0.1, -1: 0.1, 0.5: 0.5, 3: 1}
	for in, want := range cases {
		assert.Equal(t, want, sampleRatio(in), "sampleRatio(%v)", in)
	}
}

func TestExporterKind(t *testing.T) {
	assert.Equal(t, ExporterStdout, OtelConfig{}.exporterKind())
	assert.Equal(t, ExporterOTLP, OtelConfig{Endpoint: "collector:4318"}.exporterKind())
	assert.Equal(t, ExporterStdout, OtelConfig{Exporter: " STDOUT ", Endpoint: "collector:4318"}.exporterKind())
}

func TestNewExporterRejectsBadConfig(t *testing.T) {
	_, err := newExporter(context.Background(), OtelConfig{Exporter: ExporterOTLP}, nil)
	require.Error(t, err)
	_, err = newExporter(context.Background(), OtelConfig{Exporter: "zipkin"}, nil)
	require.Error(t, err)
}

func TestTracerProviderExportsToStdout(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	cfg := OtelConfig{ServiceName: "stepwise-test", SampleRatio: 1}
	exp, err := newExporter(ctx, cfg, &buf)
	require.NoError(t, err)

	tp := newTracerProvider(ctx, cfg, exp, logger.Nop())
	_, span := tp.Tracer("test").Start(ctx, "mark_complete")
	span.End()
	require.NoError(t, tp.Shutdown(ctx))

	assert.Contains(t, buf.String(), "mark_complete")
	assert.Contains(t, buf.String(), "stepwise-test")
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
