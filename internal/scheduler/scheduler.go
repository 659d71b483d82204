package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// DashboardSource obtiene los KPIs del día y el stock bajo.
type DashboardSource interface {
	Dashboard(ctx context.Context, threshold int) (*dto.DashboardDTO, error)
}

// Scheduler ejecuta el reporte diario con robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	source    DashboardSource
	expr      string
	threshold int
	timeout   time.Duration
	log       *logger.Logger
}

// New crea el scheduler. expr es una expresión cron de 5 campos; vacía deshabilita el job.
func New(expr string, threshold int, source DashboardSource, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:      cron.New(),
		source:    source,
		expr:      expr,
		threshold: threshold,
		timeout:   time.Minute,
		log:       log.Component("scheduler"),
	}
}

// Start registra el job y arranca el cron. Error si la expresión no es válida.
func (s *Scheduler) Start() error {
	if s.expr == "" {
		s.log.Info().Msg("reporte diario deshabilitado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.expr, s.dailyReport); err != nil {
		return err
	}
	s.log.Info().Str("cron", s.expr).Int("threshold", s.threshold).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) dailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce calcula el resumen del día y registra un evento info más un warn por producto con stock bajo.
func (s *Scheduler) RunOnce(ctx context.Context) {
	d, err := s.source.Dashboard(ctx, s.threshold)
	if err != nil {
		s.log.Error().Err(err).Msg("reporte diario fallido")
		return
	}

	s.log.Info().
		Str("date", d.Today.Start).
		Str("total_sales", d.Today.TotalSales.StringFixed(2)).
		Str("total_margin", d.Today.TotalMargin.StringFixed(2)).
		Str("total_charges", d.Today.TotalCharges.StringFixed(2)).
		Str("net", d.Today.Net.StringFixed(2)).
		Int("low_stock", len(d.LowStock)).
		Msg("reporte diario")

	for _, p := range d.LowStock {
		s.log.Warn().
			Str("product_id", p.ID).
			Str("product", p.Name).
			Str("category", p.Category).
			Int("stock", p.Stock).
			Int("threshold", d.Threshold).
			Msg("stock bajo")
	}
}
