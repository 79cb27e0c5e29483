package system

import (
	"image"
	"sync"
)

// FramePool переиспользует RGBA-буферы одного фиксированного размера,
// чтобы снизить нагрузку на Garbage Collector (GC) при покадровом
// рендеринге. Буферы возвращаются "грязными": вызывающая сторона обязана
// перезаписать их целиком.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(rect image.Rectangle) *FramePool {
	p := &FramePool{rect: rect}
	p.pool.New = func() interface{} {
		return image.NewRGBA(rect)
	}
	return p
}

func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put принимает буфер обратно. Буферы чужого размера игнорируются.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
