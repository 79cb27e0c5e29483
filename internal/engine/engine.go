package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dpetrovsky/kinoscope/internal/scene"
	"github.com/dpetrovsky/kinoscope/internal/system"
)

// Options управляют прогоном движка.
type Options struct {
	Workers   int // число параллельных воркеров
	From      int // первый кадр (включительно)
	To        int // кадр за последним; 0 — до конца продакшена
	ShowStats bool
}

// Engine прогоняет продакшен кадр за кадром и передает результаты
// писателю. Кадры вычисляются параллельно: каждый кадр — чистая функция
// своего номера, поэтому порядок вычисления не важен.
type Engine struct {
	production *scene.Production
	writer     FrameWriter
	opts       Options
}

func New(p *scene.Production, w FrameWriter, opts Options) *Engine {
	return &Engine{production: p, writer: w, opts: opts}
}

// Run вычисляет все кадры диапазона. Первая же ошибка писателя или
// отмена контекста останавливает прогон.
func (e *Engine) Run(ctx context.Context) error {
	from := e.opts.From
	to := e.opts.To
	if to <= 0 {
		to = e.production.TotalFrames()
	}
	if from < 0 {
		from = 0
	}
	total := to - from
	if total <= 0 {
		return fmt.Errorf("пустой диапазон кадров [%d, %d)", from, to)
	}

	workers := system.WorkerCount(e.opts.Workers, total)
	fmt.Printf("[*] Кадры: %d..%d (%d) | Воркеров: %d | FPS: %d\n",
		from, to-1, total, workers, e.production.FPS())

	var rendered, skipped atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for frame := from; frame < to; frame++ {
		frame := frame
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, ok := e.production.Evaluate(frame)
			if !ok {
				// Кадр вне всех окон: ничего не рендерим и не пишем.
				skipped.Add(1)
				return nil
			}
			if err := e.writer.WriteFrame(st); err != nil {
				return fmt.Errorf("кадр %d: %w", frame, err)
			}
			rendered.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("[*] Готово: %d кадров записано, %d пропущено за %.2fs\n",
		rendered.Load(), skipped.Load(), elapsed.Seconds())

	if e.opts.ShowStats {
		e.printStats(rendered.Load(), elapsed)
	}
	return nil
}

func (e *Engine) printStats(rendered int64, elapsed time.Duration) {
	effectiveFPS := 0.0
	if elapsed > 0 {
		effectiveFPS = float64(rendered) / elapsed.Seconds()
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n",
		rendered, elapsed.Seconds(), effectiveFPS,
	)
	fmt.Print(report)

	if stats, err := system.ReadMemoryStats(); err == nil {
		fmt.Printf("Memory: %s\n", stats)
	} else {
		fmt.Printf("[!] Статистика памяти недоступна: %v\n", err)
	}
	fmt.Println("----------------------------")
}
