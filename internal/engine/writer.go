package engine

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dpetrovsky/kinoscope/internal/preview"
	"github.com/dpetrovsky/kinoscope/internal/scene"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

// FrameWriter принимает вычисленные кадры. Кадры приходят в произвольном
// порядке и из разных горутин: писатель обязан это переживать.
type FrameWriter interface {
	WriteFrame(st scene.FrameState) error
}

// PNGWriter растеризует каждый кадр в отдельный PNG-файл. Каждый кадр
// пишется в свой файл, поэтому блокировка не нужна.
type PNGWriter struct {
	dir      string
	renderer *preview.Renderer
}

func NewPNGWriter(dir string, r *preview.Renderer) (*PNGWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать папку кадров: %w", err)
	}
	return &PNGWriter{dir: dir, renderer: r}, nil
}

func (w *PNGWriter) WriteFrame(st scene.FrameState) error {
	img := w.renderer.Render(st)

	path := filepath.Join(w.dir, fmt.Sprintf("frame_%05d.png", st.Frame))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameDoc — сериализуемая форма кадра для JSON-дампа состояния.
type frameDoc struct {
	Frame      int          `json:"frame"`
	Scene      string       `json:"scene"`
	Transition float64      `json:"transition"`
	Elements   []elementDoc `json:"elements"`
}

type elementDoc struct {
	ID       string             `json:"id"`
	Asset    string             `json:"asset,omitempty"`
	Ops      []transform.OpDesc `json:"ops"`
	Opacity  float64            `json:"opacity"`
	Children []elementDoc       `json:"children,omitempty"`
}

func docOf(st scene.FrameState) frameDoc {
	doc := frameDoc{
		Frame:      st.Frame,
		Scene:      st.SceneID,
		Transition: st.Transition,
		Elements:   make([]elementDoc, 0, len(st.Elements)),
	}
	for _, el := range st.Elements {
		doc.Elements = append(doc.Elements, elementDocOf(el))
	}
	return doc
}

func elementDocOf(el scene.ElementState) elementDoc {
	doc := elementDoc{
		ID:      el.ID,
		Asset:   el.AssetID,
		Ops:     el.Ops.Describe(),
		Opacity: el.Opacity,
	}
	for _, child := range el.Children {
		doc.Children = append(doc.Children, elementDocOf(child))
	}
	return doc
}

// StateWriter накапливает кадры в памяти и выгружает их одним
// JSON-массивом, отсортированным по номеру кадра.
type StateWriter struct {
	mu     sync.Mutex
	frames []frameDoc
}

func NewStateWriter() *StateWriter {
	return &StateWriter{}
}

func (w *StateWriter) WriteFrame(st scene.FrameState) error {
	doc := docOf(st)
	w.mu.Lock()
	w.frames = append(w.frames, doc)
	w.mu.Unlock()
	return nil
}

// Flush сортирует накопленные кадры и пишет их в out.
func (w *StateWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	frames := make([]frameDoc, len(w.frames))
	copy(frames, w.frames)
	w.mu.Unlock()

	sort.Slice(frames, func(i, j int) bool { return frames[i].Frame < frames[j].Frame })

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(frames)
}

// MultiWriter рассылает каждый кадр всем писателям по очереди.
type MultiWriter []FrameWriter

func (m MultiWriter) WriteFrame(st scene.FrameState) error {
	for _, w := range m {
		if err := w.WriteFrame(st); err != nil {
			return err
		}
	}
	return nil
}
