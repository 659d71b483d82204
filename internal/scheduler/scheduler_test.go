package scheduler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

type stubSource struct {
	out       *dto.DashboardDTO
	err       error
	threshold int
}

func (s *stubSource) Dashboard(_ context.Context, threshold int) (*dto.DashboardDTO, error) {
	s.threshold = threshold
	return s.out, s.err
}

func events(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		out = append(out, ev)
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// RunOnce
// ═══════════════════════════════════════════════════════════════════════════

func TestRunOnce_RegistraResumenYStockBajo(t *testing.T) {
	var buf bytes.Buffer
	src := &stubSource{out: &dto.DashboardDTO{
		Today: dto.SummaryDTO{
			Start:      "2026-10-14",
			End:        "2026-10-14",
			TotalSales: decimal.NewFromInt(5000),
			Net:        decimal.NewFromInt(2000),
		},
		Threshold: 3,
		LowStock: []dto.LowStockResponse{
			{ID: "p1", Name: "Castel", Category: "Bières", Stock: 1},
			{ID: "p2", Name: "Whisky", Category: "Liqueurs", Stock: 2},
		},
	}}
	s := New("", 3, src, logger.New(logger.Config{Level: "info", Output: &buf}))
	buf.Reset()

	s.RunOnce(context.Background())

	evs := events(t, &buf)
	require.Len(t, evs, 3)
	assert.Equal(t, 3, src.threshold)
	assert.Equal(t, "info", evs[0]["level"])
	assert.Equal(t, "reporte diario", evs[0]["message"])
	assert.Equal(t, "5000.00", evs[0]["total_sales"])
	assert.Equal(t, "2000.00", evs[0]["net"])
	assert.Equal(t, "scheduler", evs[0]["component"])
	for i, name := range []string{"Castel", "Whisky"} {
		assert.Equal(t, "warn", evs[i+1]["level"])
		assert.Equal(t, name, evs[i+1]["product"])
	}
}

func TestRunOnce_ErrorSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	src := &stubSource{err: errors.New("db caída")}
	s := New("", 5, src, logger.New(logger.Config{Level: "info", Output: &buf}))

	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })

	evs := events(t, &buf)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["level"])
	assert.Equal(t, "db caída", evs[0]["error"])
}

// ═══════════════════════════════════════════════════════════════════════════
// Start / Stop
// ═══════════════════════════════════════════════════════════════════════════

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("no es cron", 5, &stubSource{}, nil)
	assert.Error(t, s.Start())
}

func TestStart_DeshabilitadoYStop(t *testing.T) {
	s := New("", 5, &stubSource{}, nil)
	require.NoError(t, s.Start())
	s.Stop()

	s = New("0 23 * * *", 5, &stubSource{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
