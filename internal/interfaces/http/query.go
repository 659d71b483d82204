package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
)

// dateOrToday interpreta YYYY-MM-DD; vacío = hoy.
func dateOrToday(s string) (time.Time, error) {
	if s == "" {
		return entity.DateOf(time.Now()), nil
	}
	return dto.ParseDate(s)
}

// optionalDates lee ?start= y ?end= (ambos opcionales).
func optionalDates(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	start, err := dto.ParseOptionalDate(c.Query("start"))
	if err != nil {
		return nil, nil, err
	}
	end, err := dto.ParseOptionalDate(c.Query("end"))
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// period lee ?start= y ?end=; por defecto, del primer día del mes en curso a hoy.
func period(c *fiber.Ctx) (time.Time, time.Time, error) {
	today := entity.DateOf(time.Now())
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today
	var err error
	if s := c.Query("start"); s != "" {
		if start, err = dto.ParseDate(s); err != nil {
			return start, end, err
		}
	}
	if s := c.Query("end"); s != "" {
		if end, err = dto.ParseDate(s); err != nil {
			return start, end, err
		}
	}
	return start, end, nil
}

// marginModel ?model=simple|glass_yield (vacío = glass_yield).
func marginModel(c *fiber.Ctx) (pricing.Model, error) {
	return pricing.ParseModel(c.Query("model"), pricing.ModelGlassYield)
}

// optionalBool ?name=true|false; vacío = nil.
func optionalBool(c *fiber.Ctx, name string) (*bool, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
