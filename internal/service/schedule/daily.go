package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Daily вызывает job по cron-выражению в заданном часовом поясе.
type Daily struct {
	Expr     string
	Location *time.Location

	cron     *cron.Cron
	schedule cron.Schedule
}

func NewDaily(expr string, loc *time.Location, job func(ctx context.Context)) (*Daily, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse cron expression %q", expr)
	}
	return newDaily(expr, sched, loc, job), nil
}

func newDaily(expr string, sched cron.Schedule, loc *time.Location, job func(ctx context.Context)) *Daily {
	c := cron.New(cron.WithLocation(loc))
	c.Schedule(sched, cron.FuncJob(func() {
		log.Infof("[Scheduler] ⏰ Сработало расписание %q (%s)", expr, loc)
		job(context.Background())
	}))

	return &Daily{
		Expr:     expr,
		Location: loc,
		cron:     c,
		schedule: sched,
	}
}

// Next — ближайшее срабатывание после t.
func (d *Daily) Next(t time.Time) time.Time {
	return d.schedule.Next(t.In(d.Location))
}

func (d *Daily) Start() {
	d.cron.Start()
	log.Infof("[Scheduler] 📅 Следующее обновление: %s", d.Next(time.Now()).Format(time.RFC1123))
}

// Stop останавливает планировщик и ждёт выполняющееся задание или отмены ctx.
func (d *Daily) Stop(ctx context.Context) {
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn("[Scheduler] Не дождались завершения задания")
	}
}
