package tickmath

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"clmScope/internal/model"
)

func testConvention(dec0, dec1 int) model.PriceConvention {
	return model.PriceConvention{
		Protocol:       "uniswap-v3",
		LogBase:        1.0001,
		SqrtPriceBits:  96,
		MaxTick:        443636,
		Token0Decimals: dec0,
		Token1Decimals: dec1,
	}
}

func TestTickPriceRoundTrip(t *testing.T) {
	conv := testConvention(18, 18)

	for tick := int32(-443636); tick <= 443636; tick += 997 {
		price, err := TickToPrice(tick, conv)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		back, err := PriceToTick(price, conv)
		if err != nil {
			t.Fatalf("price %g (tick %d): %v", price, tick, err)
		}
		if diff := back - tick; diff < -1 || diff > 1 {
			t.Fatalf("round trip tick %d -> %d", tick, back)
		}
	}
}

func TestTickPriceRoundTripInverted(t *testing.T) {
	conv := testConvention(6, 18)
	conv.InvertPair = true

	for _, tick := range []int32{-100000, -1, 0, 1, 100000} {
		price, err := TickToPrice(tick, conv)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		back, err := PriceToTick(price, conv)
		if err != nil {
			t.Fatalf("price %g: %v", price, err)
		}
		if diff := back - tick; diff < -1 || diff > 1 {
			t.Fatalf("round trip tick %d -> %d", tick, back)
		}
	}
}

func TestDecimalOffsetRegression(t *testing.T) {
	// decimals (6, 9) vs (6, 8) must shift the same tick's price by exactly
	// one power of ten. Getting this wrong is the 100x-too-high bug class.
	convA := testConvention(6, 9)
	convB := testConvention(6, 8)

	for _, tick := range []int32{-50000, 0, 47220, 61560} {
		priceA, err := TickToPrice(tick, convA)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		priceB, err := TickToPrice(tick, convB)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		ratio := priceB / priceA
		if math.Abs(ratio-10) > 1e-9 {
			t.Fatalf("tick %d: expected 10x ratio, got %g", tick, ratio)
		}
	}
}

func TestSqrtPriceToPrice(t *testing.T) {
	conv := testConvention(6, 6)

	// sqrtPrice == 2^96 encodes a raw price of exactly 1.
	raw := new(big.Int).Lsh(big.NewInt(1), 96)
	price, err := SqrtPriceToPrice(raw, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(price-1) > 1e-12 {
		t.Fatalf("price mismatch: %g", price)
	}

	// Doubling the sqrt price quadruples the price.
	price4, err := SqrtPriceToPrice(new(big.Int).Lsh(raw, 1), conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(price4-4) > 1e-12 {
		t.Fatalf("price mismatch: %g", price4)
	}
}

func TestSqrtPriceToPriceDecimalOffset(t *testing.T) {
	conv := testConvention(6, 8)
	raw := new(big.Int).Lsh(big.NewInt(1), 96)

	price, err := SqrtPriceToPrice(raw, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(price-0.01) > 1e-15 {
		t.Fatalf("price mismatch: %g", price)
	}
}

func TestSqrtPriceMatchesTickPrice(t *testing.T) {
	conv := testConvention(18, 18)
	tick := int32(47220)

	ratio := SqrtRatioAtTick(tick, conv)
	raw, _ := ratio.Int(nil)

	fromSqrt, err := SqrtPriceToPrice(raw, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromTick, err := TickToPrice(tick, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(fromSqrt-fromTick)/fromTick > 1e-9 {
		t.Fatalf("sqrt price %g vs tick price %g", fromSqrt, fromTick)
	}
}

func TestNormalizeTick(t *testing.T) {
	conv := testConvention(6, 6)

	cases := []struct {
		raw     int64
		want    int32
		wantErr bool
	}{
		{raw: 0, want: 0},
		{raw: 47220, want: 47220},
		{raw: -443636, want: -443636},
		{raw: 443636, want: 443636},
		// int24 two's complement: -15 decoded as unsigned.
		{raw: (1 << 24) - 15, want: -15},
		// int32 two's complement: -443000 decoded as unsigned.
		{raw: (1 << 32) - 443000, want: -443000},
		// Unsigned reinterpretation outside the max tick is rejected.
		{raw: 1 << 23, wantErr: true},
		{raw: 500000, wantErr: true},
		{raw: -500000, wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeTick(tc.raw, conv)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("raw %d: expected error, got %d", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("raw %d: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("raw %d: got %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestValidateConvention(t *testing.T) {
	valid := testConvention(6, 18)
	if err := ValidateConvention(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []model.PriceConvention{
		{},
		{LogBase: 1.0001, MaxTick: 443636, Token0Decimals: 6, Token1Decimals: 6},
		{LogBase: 1.0001, SqrtPriceBits: 96, Token0Decimals: 6, Token1Decimals: 6},
		{LogBase: 1.0001, SqrtPriceBits: 96, MaxTick: 443636, Token0Decimals: -1, Token1Decimals: 6},
		{LogBase: 0.5, SqrtPriceBits: 96, MaxTick: 443636, Token0Decimals: 6, Token1Decimals: 6},
	}
	for i, conv := range bad {
		err := ValidateConvention(conv)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if !errors.Is(err, model.ErrInvalidPriceConvention) {
			t.Fatalf("case %d: wrong error: %v", i, err)
		}
	}
}
