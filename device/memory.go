/*
Copyright © 2019 the ChemFlow authors.
This file is part of ChemFlow.

ChemFlow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemFlow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemFlow.  If not, see <http://www.gnu.org/licenses/>.
*/

package device

import (
	"errors"
	"sync"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/chemflow"
)

// Buffer is a block of device memory holding float64 elements.
type Buffer struct {
	name string
	data *sparse.DenseArray
}

// Name returns the name the buffer was allocated with.
func (b *Buffer) Name() string { return b.name }

// Shape returns the dimensions of the buffer.
func (b *Buffer) Shape() []int { return b.data.GetShape() }

// Len returns the number of elements in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data.Elements)
}

// Data returns the buffer contents in row-major order, or nil for a nil
// buffer.
func (b *Buffer) Data() []float64 {
	if b == nil {
		return nil
	}
	return b.data.Elements
}

// Allocator provides device memory.
type Allocator interface {
	// Alloc returns a zeroed buffer with the given dimensions.
	Alloc(name string, shape ...int) (*Buffer, error)

	// Free returns the memory of b to the allocator.
	Free(b *Buffer)
}

// ErrOutOfMemory is returned by HostMemory when an allocation would
// exceed its capacity.
var ErrOutOfMemory = errors.New("device: out of memory")

// HostMemory is an Allocator backed by host memory.
// It is safe for concurrent use.
type HostMemory struct {
	// Capacity is the largest number of elements that may be allocated
	// at once. Zero means no limit.
	Capacity int

	mu    sync.Mutex
	inUse int
}

// Alloc implements Allocator.
func (m *HostMemory) Alloc(name string, shape ...int) (*Buffer, error) {
	n := 1
	for _, d := range shape {
		n *= d
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Capacity > 0 && m.inUse+n > m.Capacity {
		return nil, &chemflow.AllocationError{Buffer: name, Size: n, Err: ErrOutOfMemory}
	}
	m.inUse += n
	return &Buffer{name: name, data: sparse.ZerosDense(shape...)}, nil
}

// Free implements Allocator.
func (m *HostMemory) Free(b *Buffer) {
	m.mu.Lock()
	m.inUse -= b.Len()
	m.mu.Unlock()
}

// InUse returns the number of elements currently allocated.
func (m *HostMemory) InUse() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inUse
}
