package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clmScope/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("unexpected hit")
	}

	cache.Set("k", 42)
	value, ok := cache.Get("k")
	if !ok || value.(int) != 42 {
		t.Fatalf("got %v %v", value, ok)
	}

	cache.Invalidate("k")
	if _, ok := cache.Get("k"); ok {
		t.Fatalf("expected invalidated key to miss")
	}
}

func TestFilePositionProvider(t *testing.T) {
	path := writeFile(t, "positions.jsonl", `
{"id":"pos-1","pool_id":"0xa","tick_lower":-60,"tick_upper":60,"liquidity":"1000"}

{"id":"pos-2","pool_id":"0xa","tick_lower":0,"tick_upper":120,"liquidity":"2000","fee_owed0":"5"}
`)

	p := NewFilePositionProvider(path)
	if p.Source() != SourceFile {
		t.Fatalf("source: %s", p.Source())
	}

	positions, err := p.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("count: %d", len(positions))
	}
	if positions[0].ID != "pos-1" || positions[0].TickLower != -60 {
		t.Fatalf("record 0: %+v", positions[0])
	}
	if positions[1].FeeOwed0 != "5" {
		t.Fatalf("record 1: %+v", positions[1])
	}
}

func TestFilePositionProviderRejectsBadLine(t *testing.T) {
	path := writeFile(t, "positions.jsonl", `{"id":"pos-1"`+"\n")

	if _, err := NewFilePositionProvider(path).Positions(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFilePositionProviderMissingFile(t *testing.T) {
	p := NewFilePositionProvider(filepath.Join(t.TempDir(), "nope.jsonl"))
	if _, err := p.Positions(context.Background()); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestFilePoolProvider(t *testing.T) {
	path := writeFile(t, "pools.jsonl", `
{"pool_id":"0xa","network":"ethereum","protocol":"uniswap-v3","tick_spacing":60,"current_tick":54000,"token0_decimals":6,"token1_decimals":18}
{"pool_id":"0xa","network":"ethereum","protocol":"uniswap-v3","tick_spacing":60,"current_tick":54060,"token0_decimals":6,"token1_decimals":18}
`)

	cache := NewMemoryCache()
	p := NewFilePoolProvider(path, cache)

	snap, err := p.PoolSnapshot(context.Background(), "0xa")
	if err != nil {
		t.Fatalf("PoolSnapshot: %v", err)
	}
	// The later line wins for a repeated pool id.
	if snap.State.CurrentTick != 54060 {
		t.Fatalf("current tick: %d", snap.State.CurrentTick)
	}

	if _, ok := cache.Get("pool:0xa"); !ok {
		t.Fatalf("expected adapted snapshot to be cached")
	}

	again, err := p.PoolSnapshot(context.Background(), "0xa")
	if err != nil {
		t.Fatalf("PoolSnapshot (cached): %v", err)
	}
	if again.State.CurrentTick != snap.State.CurrentTick {
		t.Fatalf("cached snapshot differs: %d", again.State.CurrentTick)
	}

	if _, err := p.PoolSnapshot(context.Background(), "0xmissing"); err == nil {
		t.Fatalf("expected error for unknown pool")
	}
}

func TestFileSeriesProvider(t *testing.T) {
	path := writeFile(t, "series.jsonl", `
{"pool_address":"0xa","network":"ethereum","source":"defillama","fee_apr":25,"points":[{"timestamp":1700000000,"value":100},{"timestamp":1700086400,"value":105}]}
`)

	p := NewFileSeriesProvider(path)
	series, err := p.Series(context.Background())
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("count: %d", len(series))
	}
	if series[0].FeeApr != 25 || len(series[0].Points) != 2 {
		t.Fatalf("record: %+v", series[0])
	}
}

func TestStaticPositionProviderReturnsCopies(t *testing.T) {
	seed := []model.RawPosition{{ID: "pos-1", PoolID: "0xa", TickLower: -60, TickUpper: 60}}
	p := NewStaticPositionProvider(seed)

	if p.Source() != SourceStatic {
		t.Fatalf("source: %s", p.Source())
	}

	first, err := p.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	first[0].ID = "mutated"

	second, err := p.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if second[0].ID != "pos-1" {
		t.Fatalf("provider state leaked: %+v", second[0])
	}
}
