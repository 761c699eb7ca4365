package cloth

import "sync"

const DEFAULT_WORKERS = 1

// chunks splits [0, size) into one contiguous range per worker and runs them concurrently.
// fn receives the worker id so results can be merged back in index order.
func chunks(workersCount int, size int, fn func(worker, start, end int)) {
	workersCount = max(DEFAULT_WORKERS, workersCount)
	if workersCount == 1 {
		fn(0, 0, size)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (size + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			fn(worker, start, end)
		}(workerID, min(workerID*chunkSize, size), min((workerID+1)*chunkSize, size))
	}
	wg.Wait()
}

func task[T any](workersCount int, data []T, fn func(data T)) {
	chunks(workersCount, len(data), func(_, start, end int) {
		for i := start; i < end; i++ {
			fn(data[i])
		}
	})
}
