package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"clmScope/internal/model"
	"clmScope/internal/protocol"
)

// SourceFile tags data read from pre-fetched snapshot files.
const SourceFile = "file"

// FilePositionProvider reads raw position records from a JSONL file, one
// record per line.
type FilePositionProvider struct {
	path string
}

func NewFilePositionProvider(path string) *FilePositionProvider {
	return &FilePositionProvider{path: path}
}

func (p *FilePositionProvider) Positions(_ context.Context) ([]model.RawPosition, error) {
	var positions []model.RawPosition
	err := readJSONL(p.path, func(line []byte) error {
		var record model.RawPosition
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("parse position record: %w", err)
		}
		positions = append(positions, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

func (p *FilePositionProvider) Source() string {
	return SourceFile
}

// FilePoolProvider reads pool snapshot records from a JSONL file and serves
// adapted snapshots by pool id. Adapted snapshots go through the cache so
// positions sharing a pool resolve it once.
type FilePoolProvider struct {
	path  string
	cache Cache

	mu     sync.Mutex
	loaded bool
	pools  map[string]model.RawPool
}

func NewFilePoolProvider(path string, cache Cache) *FilePoolProvider {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &FilePoolProvider{path: path, cache: cache}
}

func (p *FilePoolProvider) PoolSnapshot(_ context.Context, poolID string) (model.PoolSnapshot, error) {
	if cached, ok := p.cache.Get("pool:" + poolID); ok {
		if snapshot, ok := cached.(model.PoolSnapshot); ok {
			return snapshot, nil
		}
	}

	if err := p.load(); err != nil {
		return model.PoolSnapshot{}, err
	}

	p.mu.Lock()
	raw, ok := p.pools[poolID]
	p.mu.Unlock()
	if !ok {
		return model.PoolSnapshot{}, fmt.Errorf("pool %s not found in %s", poolID, p.path)
	}

	snapshot, err := protocol.AdaptPool(raw)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	p.cache.Set("pool:"+poolID, snapshot)
	return snapshot, nil
}

func (p *FilePoolProvider) load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}
	p.pools = make(map[string]model.RawPool)
	err := readJSONL(p.path, func(line []byte) error {
		var record model.RawPool
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("parse pool record: %w", err)
		}
		// Later lines replace earlier snapshots of the same pool wholesale.
		p.pools[record.PoolID] = record
		return nil
	})
	if err != nil {
		return err
	}
	p.loaded = true
	return nil
}

// FileSeriesProvider reads price series records from a JSONL file, one pool
// per line.
type FileSeriesProvider struct {
	path string
}

func NewFileSeriesProvider(path string) *FileSeriesProvider {
	return &FileSeriesProvider{path: path}
}

func (p *FileSeriesProvider) Series(_ context.Context) ([]model.RawSeries, error) {
	var series []model.RawSeries
	err := readJSONL(p.path, func(line []byte) error {
		var record model.RawSeries
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("parse series record: %w", err)
		}
		series = append(series, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}

func (p *FileSeriesProvider) Source() string {
	return SourceFile
}

func readJSONL(path string, handle func(line []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := handle(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
