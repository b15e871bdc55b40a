package stats

import (
	"errors"
	"math"
	"time"

	"github.com/Unlucky13unny/playerzero/internal/models"
)

// ErrInsufficientData возвращается для явного диапазона, в который
// попало меньше двух снапшотов. Остальные режимы вместо ошибки
// деградируют до нулевой дельты: «пока нет активности за период» —
// ожидаемое состояние.
var ErrInsufficientData = errors.New("insufficient data: need at least two snapshots in range")

// DefaultBufferWindow окно перед началом недели или месяца, в котором
// поздняя загрузка прошлого периода засчитывается базой нового.
const DefaultBufferWindow = 4 * time.Hour

// Engine вычисляет дельты счётчиков за период. Буферное окно задаётся
// при создании.
type Engine struct {
	bufferWindow time.Duration
}

// NewEngine создает Engine. При нулевом или отрицательном окне
// используется DefaultBufferWindow.
func NewEngine(bufferWindow time.Duration) *Engine {
	if bufferWindow <= 0 {
		bufferWindow = DefaultBufferWindow
	}
	return &Engine{bufferWindow: bufferWindow}
}

// BufferWindow возвращает ширину буферного окна движка.
func (e *Engine) BufferWindow() time.Duration {
	return e.bufferWindow
}

// ComputeDelta вычисляет неотрицательную дельту пяти счётчиков за
// запрошенный период плюс среднесуточные темпы. registeredAt — дата
// регистрации аккаунта, используется только в режиме PeriodAllTime.
// snapshots должны быть отсортированы по возрастанию (entry_date,
// created_at).
func (e *Engine) ComputeDelta(snapshots []models.StatSnapshot, spec PeriodSpec, registeredAt, now time.Time) (*models.StatDelta, error) {
	switch spec.Kind {
	case PeriodRange:
		return e.computeRange(snapshots, spec.Start, spec.End)
	case PeriodAllTime:
		return e.computeAllTime(snapshots, registeredAt, now), nil
	case PeriodWeek:
		return e.computeCalendarPeriod(snapshots, WeekStart(now), now, 7), nil
	case PeriodMonth:
		return e.computeCalendarPeriod(snapshots, MonthStart(now), now, now.UTC().Day()), nil
	default:
		return nil, errors.New("unknown period kind: " + string(spec.Kind))
	}
}

// computeRange считает дельту по явному диапазону: база — самый ранний
// снапшот в диапазоне, верх — самый поздний.
func (e *Engine) computeRange(snapshots []models.StatSnapshot, start, end time.Time) (*models.StatDelta, error) {
	var inRange []models.StatSnapshot
	for _, s := range snapshots {
		d := DateOnly(s.EntryDate)
		if !d.Before(DateOnly(start)) && !d.After(DateOnly(end)) {
			inRange = append(inRange, s)
		}
	}
	if len(inRange) < 2 {
		return nil, ErrInsufficientData
	}

	baseline := inRange[0]
	latest := inRange[len(inRange)-1]
	days := DaysBetween(start, end)

	return buildDelta(&baseline, &latest, days, DateOnly(start), DateOnly(end)), nil
}

// computeAllTime отвечает на вопрос «сколько всего и с каким средним
// темпом»: базой служат нулевые счётчики, а не разница двух снапшотов.
func (e *Engine) computeAllTime(snapshots []models.StatSnapshot, registeredAt, now time.Time) *models.StatDelta {
	days := DaysBetween(registeredAt, now)

	var latest *models.StatSnapshot
	if len(snapshots) > 0 {
		latest = &snapshots[len(snapshots)-1]
	}
	return buildDelta(nil, latest, days, DateOnly(registeredAt), now.UTC())
}

// computeCalendarPeriod реализует выбор базы для недели и месяца при
// разреженных данных. Сначала ищется снапшот, загруженный в буферном
// окне перед началом периода с датой записи до начала периода — такая
// поздняя загрузка логически закрывает прошлый период и служит базой
// нового. Иначе базой становится самый ранний снапшот внутри периода.
// Верх всегда берётся только из периода. Один-единственный снапшот без
// буферной базы дельту не образует.
func (e *Engine) computeCalendarPeriod(snapshots []models.StatSnapshot, periodStart, now time.Time, dayCount int) *models.StatDelta {
	bufferStart := periodStart.Add(-e.bufferWindow)

	var buffered, baseline, latest *models.StatSnapshot
	for i := range snapshots {
		s := &snapshots[i]
		entry := DateOnly(s.EntryDate)
		if !entry.Before(periodStart) {
			if baseline == nil {
				baseline = s
			}
			latest = s
			continue
		}
		created := s.CreatedAt.UTC()
		if !created.Before(bufferStart) && created.Before(periodStart) {
			buffered = s
		}
	}
	if buffered != nil {
		baseline = buffered
	}

	if dayCount < 1 {
		dayCount = 1
	}
	periodEnd := now.UTC()

	if baseline == nil || latest == nil || baseline == latest {
		// Одна точка тренд не образует; отсутствие точек — не ошибка.
		return buildDelta(nil, nil, dayCount, periodStart, periodEnd)
	}
	return buildDelta(baseline, latest, dayCount, periodStart, periodEnd)
}

// buildDelta собирает StatDelta из пары снапшотов. nil-база означает
// нулевые счётчики, nil-верх — нулевую дельту. Отрицательные разницы
// обрезаются до нуля: убывание счётчика возможно только после
// административной правки и не должно показываться как регресс.
func buildDelta(baseline, latest *models.StatSnapshot, dayCount int, periodStart, periodEnd time.Time) *models.StatDelta {
	if dayCount < 1 {
		dayCount = 1
	}
	d := &models.StatDelta{
		DayCount:    dayCount,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	if latest == nil {
		return d
	}

	var base models.StatSnapshot
	if baseline != nil {
		base = *baseline
	}

	d.TotalXP = clampInt64(latest.TotalXP - base.TotalXP)
	d.PokemonCaught = clampInt64(latest.PokemonCaught - base.PokemonCaught)
	d.DistanceWalked = clampFloat(latest.DistanceWalked - base.DistanceWalked)
	d.PokestopsVisited = clampInt64(latest.PokestopsVisited - base.PokestopsVisited)
	d.UniquePokedexEntries = clampInt64(latest.UniquePokedexEntries - base.UniquePokedexEntries)

	days := float64(dayCount)
	d.XPPerDay = int64(math.Round(float64(d.TotalXP) / days))
	d.CatchesPerDay = int64(math.Round(float64(d.PokemonCaught) / days))
	d.StopsPerDay = int64(math.Round(float64(d.PokestopsVisited) / days))
	d.DistancePerDay = math.Round(d.DistanceWalked/days*10) / 10

	return d
}

func clampInt64(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
