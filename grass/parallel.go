package grass

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// ChunkSize is the number of blades generated per pool task.
const ChunkSize = 4096

// BuildParallel generates the field in ChunkSize slices on a worker pool.
// Chunk c draws from rand.NewSource(seed+c), so the result depends only on
// seed and never on the worker count. workers <= 0 uses runtime.NumCPU();
// workers == 1 fills the chunks on the calling goroutine.
func BuildParallel(field Field, blade Blade, seed int64, workers int) *MeshData {
	if field.Count <= 0 {
		return &MeshData{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	m := newMeshData(field.Count)
	chunks := (field.Count + ChunkSize - 1) / ChunkSize
	fill := func(chunk int) {
		first := chunk * ChunkSize
		last := min(first+ChunkSize, field.Count)
		rng := rand.New(rand.NewSource(seed + int64(chunk)))
		for i := first; i < last; i++ {
			x, z := field.sample(rng)
			m.writeBlade(i, x, z, blade)
		}
	}

	if workers == 1 || chunks == 1 {
		for c := 0; c < chunks; c++ {
			fill(c)
		}
		m.Normals = ComputeNormals(m.Positions, m.Indices)
		return m
	}

	pool := worker.NewDynamicWorkerPool(workers, chunks, time.Second)

	// The pool idles out on its own, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		chunk := c
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: chunk,
			Do: func() (any, error) {
				defer wg.Done()
				fill(chunk)
				return nil, nil
			},
		})
	}
	wg.Wait()

	m.Normals = ComputeNormals(m.Positions, m.Indices)
	return m
}
