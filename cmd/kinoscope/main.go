package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dpetrovsky/kinoscope/internal/asset"
	"github.com/dpetrovsky/kinoscope/internal/config"
	"github.com/dpetrovsky/kinoscope/internal/engine"
	"github.com/dpetrovsky/kinoscope/internal/preview"
	"github.com/dpetrovsky/kinoscope/internal/scene"
	"github.com/dpetrovsky/kinoscope/internal/storyboard"
	"github.com/dpetrovsky/kinoscope/internal/system"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"storyboards", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	initPtr := flag.Bool("init", false, "Сгенерировать шаблонный сториборд в storyboards/ и выйти")
	framesPtr := flag.Int("frames", 600, "Длина шаблонного сториборда в кадрах (для -init)")
	fpsPtr := flag.Int("fps", 30, "FPS шаблонного сториборда (для -init)")
	storyboardPtr := flag.String("storyboard", "", "Путь к YAML-сториборду (по умолчанию: самый свежий файл в storyboards/)")
	outPtr := flag.String("out", "output", "Папка для результатов")
	formatPtr := flag.String("format", "png", "Формат вывода: png, json, both")
	widthPtr := flag.Int("width", 1280, "Ширина превью")
	heightPtr := flag.Int("height", 720, "Высота превью")
	fromPtr := flag.Int("from", 0, "Первый кадр")
	toPtr := flag.Int("to", 0, "Кадр за последним (0 — до конца)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	assetsPtr := flag.String("assets", "", "Папка ассетов для проверки ссылок сториборда")
	cuesPtr := flag.String("cues", "", "Путь для выгрузки звуковых меток (YAML)")
	statsPtr := flag.Bool("stats", false, "Показать статистику производительности")

	flag.Parse()

	if *initPtr {
		sb, err := storyboard.Template(*framesPtr, *fpsPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка генерации шаблона: %v", err)
		}
		path := config.GeneratePath("storyboards")
		if err := config.Write(sb, path); err != nil {
			log.Fatalf("[-] Ошибка записи сториборда: %v", err)
		}
		fmt.Printf("[+++] Успех! Сториборд сохранен: %s\n", path)
		return
	}

	sbPath := *storyboardPtr
	if sbPath == "" {
		latest, err := config.FindLatest("storyboards")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Сгенерируйте сториборд через -init", err)
		}
		sbPath = latest
		fmt.Printf("[*] Выбран сториборд: %s\n", sbPath)
	}

	sb, err := config.Read(sbPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения сториборда: %v", err)
	}

	production, err := scene.NewProduction(sb)
	if err != nil {
		log.Fatalf("[-] Ошибка сборки сцен: %v", err)
	}

	fmt.Println("--- [KINOSCOPE] ---")
	fmt.Printf("[*] Сцен: %d | Кадров: %d @ %d FPS\n", len(sb.Scenes), production.TotalFrames(), production.FPS())

	// Проверяем, что все ассеты сториборда существуют на диске
	if *assetsPtr != "" {
		catalog := asset.NewCatalog()
		if err := catalog.ScanDir(*assetsPtr); err != nil {
			log.Fatalf("[-] Ошибка сканирования ассетов: %v", err)
		}
		if err := catalog.Verify(assetIDs(sb)); err != nil {
			log.Fatalf("[-] Ошибка проверки ассетов: %v", err)
		}
		fmt.Printf("[*] Ассеты проверены: %d в каталоге\n", catalog.Len())
	}

	if *cuesPtr != "" {
		if err := writeCues(production, *cuesPtr); err != nil {
			log.Fatalf("[-] Ошибка выгрузки меток: %v", err)
		}
		fmt.Printf("[*] Звуковые метки выгружены: %s\n", *cuesPtr)
	}

	writer, flush, err := buildWriter(*formatPtr, *outPtr, *widthPtr, *heightPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	eng := engine.New(production, writer, engine.Options{
		Workers:   *workersPtr,
		From:      *fromPtr,
		To:        *toPtr,
		ShowStats: *statsPtr,
	})
	if err := eng.Run(context.Background()); err != nil {
		log.Fatalf("[-] Ошибка рендеринга: %v", err)
	}

	if err := flush(); err != nil {
		log.Fatalf("[-] Ошибка записи состояния: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", *outPtr)
}

// buildWriter собирает писатель кадров под запрошенный формат и функцию
// финализации, вызываемую после прогона.
func buildWriter(format, out string, width, height int) (engine.FrameWriter, func() error, error) {
	noop := func() error { return nil }

	newPNG := func() (engine.FrameWriter, error) {
		r, err := preview.NewRenderer(width, height)
		if err != nil {
			return nil, err
		}
		return engine.NewPNGWriter(filepath.Join(out, "frames"), r)
	}

	switch format {
	case "png":
		w, err := newPNG()
		return w, noop, err
	case "json":
		sw := engine.NewStateWriter()
		return sw, flushTo(sw, filepath.Join(out, "state.json")), nil
	case "both":
		pw, err := newPNG()
		if err != nil {
			return nil, nil, err
		}
		sw := engine.NewStateWriter()
		return engine.MultiWriter{pw, sw}, flushTo(sw, filepath.Join(out, "state.json")), nil
	default:
		return nil, nil, fmt.Errorf("неизвестный формат %q (png, json, both)", format)
	}
}

func flushTo(sw *engine.StateWriter, path string) func() error {
	return func() error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := sw.Flush(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// assetIDs собирает идентификаторы ассетов, на которые ссылается сториборд.
func assetIDs(sb *config.Storyboard) []string {
	var ids []string
	seen := map[string]bool{}
	for _, sc := range sb.Scenes {
		for _, el := range sc.Elements {
			if el.Asset != "" && !seen[el.Asset] {
				seen[el.Asset] = true
				ids = append(ids, el.Asset)
			}
		}
	}
	return ids
}

func writeCues(p *scene.Production, path string) error {
	data, err := yaml.Marshal(p.Cues().Cues())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
