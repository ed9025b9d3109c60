// Package form3 implements 3D density fields evaluated over batches of
// positions on the CPU. All shapes are negative inside and positive outside
// and implement fastdc.SDF3.
package form3

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// SDF3 is a bounded 3D density field.
type SDF3 interface {
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
	Bounds() ms3.Box
}

// VecPool serves as a pool of position and distance buffers for evaluating
// composite SDFs while reducing garbage generation. Pass it as the userData
// argument of Evaluate. It is safe for concurrent use.
type VecPool struct {
	V3    bufPool[ms3.Vec]
	Float bufPool[float32]
}

// AssertAllReleased checks all buffers are not in use. Should be called
// after ending a run to find leaks.
func (vp *VecPool) AssertAllReleased() error {
	err := vp.Float.assertAllReleased()
	if err != nil {
		return err
	}
	return vp.V3.assertAllReleased()
}

// getVecPool returns the VecPool in userData. Evaluations without one get a
// fresh pool whose buffers are collected with it.
func getVecPool(userData any) *VecPool {
	switch v := userData.(type) {
	case *VecPool:
		return v
	case interface{ VecPool() *VecPool }:
		if vp := v.VecPool(); vp != nil {
			return vp
		}
	}
	return new(VecPool)
}

type bufPool[T any] struct {
	mu        sync.Mutex
	_ins      [][]T
	_acquired []bool
}

// Acquire returns a buffer of at least minLength elements. It must be
// returned with Release.
func (bp *bufPool[T]) Acquire(minLength int) []T {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	for i, locked := range bp._acquired {
		if !locked && len(bp._ins[i]) >= minLength {
			bp._acquired[i] = true
			return bp._ins[i][:minLength]
		}
	}
	newSlice := make([]T, max(minLength, 1))
	bp._ins = append(bp._ins, newSlice)
	bp._acquired = append(bp._acquired, true)
	return newSlice[:minLength]
}

// Release returns a buffer obtained from Acquire to the pool.
func (bp *bufPool[T]) Release(buf []T) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	buf = buf[:cap(buf)]
	for i, instance := range bp._ins {
		if &instance[0] == &buf[0] {
			if !bp._acquired[i] {
				return errors.New("release of unacquired resource")
			}
			bp._acquired[i] = false
			return nil
		}
	}
	return errors.New("release of nonexistent resource")
}

func (bp *bufPool[T]) assertAllReleased() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	for _, locked := range bp._acquired {
		if locked {
			return fmt.Errorf("locked %T resource found in form3.bufPool.assertAllReleased, leak?", *new(T))
		}
	}
	return nil
}

func minf(a, b float32) float32 { return math32.Min(a, b) }
func maxf(a, b float32) float32 { return math32.Max(a, b) }
func absf(a float32) float32    { return math32.Abs(a) }

func hypotf(a, b float32) float32 { return math32.Hypot(a, b) }

func boxUnion(a, b ms3.Box) ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: minf(a.Min.X, b.Min.X), Y: minf(a.Min.Y, b.Min.Y), Z: minf(a.Min.Z, b.Min.Z)},
		Max: ms3.MaxElem(a.Max, b.Max),
	}
}
