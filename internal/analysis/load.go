package analysis

import (
	"context"
	"encoding/json"
	"os"

	"golang.org/x/sync/errgroup"
)

// Loader reads and decodes artifact files. The zero value loads
// sequentially without a cache.
type Loader struct {
	// Jobs bounds decode parallelism. Values below 2 load files one at a
	// time in the order Locate yielded them; higher values fan out across
	// a worker group. Either way the returned sequence keeps locate order.
	Jobs int

	// Cache, when non-nil, short-circuits decoding of byte-identical
	// artifacts seen on a previous build.
	Cache *DiskCache
}

// Load decodes each artifact file in paths into an Analysis record. A
// file that cannot be read or decoded is skipped with a diagnostic in the
// returned Bag; a single bad artifact never aborts the batch. The result
// may be empty, but Load itself does not fail.
func (l Loader) Load(ctx context.Context, paths []string) ([]Analysis, *Bag) {
	bag := NewBag(len(paths))
	if len(paths) == 0 {
		return nil, bag
	}

	decoded := make([]*Analysis, len(paths))
	errs := make([]error, len(paths))

	if l.Jobs > 1 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(l.Jobs)
		for i, path := range paths {
			i, path := i, path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return nil
				}
				decoded[i], errs[i] = l.loadFile(path)
				return nil
			})
		}
		// Workers never return errors; failures land in errs.
		_ = g.Wait()
	} else {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			decoded[i], errs[i] = l.loadFile(path)
		}
	}

	// Results are index-addressed above, so compacting here preserves
	// locate order even after a parallel fan-out.
	result := make([]Analysis, 0, len(paths))
	for i, path := range paths {
		if errs[i] != nil {
			bag.Add(Diagnostic{File: path, Err: errs[i]})
			continue
		}
		result = append(result, *decoded[i])
	}
	return result, bag
}

func (l Loader) loadFile(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var key Digest
	if l.Cache != nil {
		key = DigestOf(data)
		if a, ok := l.Cache.Get(key); ok {
			return a, nil
		}
	}

	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	if l.Cache != nil {
		// Cache writes are best-effort; a failed Put just means a
		// re-decode next build.
		_ = l.Cache.Put(key, &a)
	}
	return &a, nil
}
