package protocol

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"clmScope/internal/model"
)

// Function output ABIs for the EVM family of CLM protocols. Only return
// decoding matters here: the raw bytes are supplied pre-fetched by a
// collaborator, the core performs no RPC.
const evmPoolABIJSON = `[
  {
    "inputs": [],
    "name": "slot0",
    "outputs": [
      {"internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
      {"internalType": "int24", "name": "tick", "type": "int24"},
      {"internalType": "uint16", "name": "observationIndex", "type": "uint16"},
      {"internalType": "uint16", "name": "observationCardinality", "type": "uint16"},
      {"internalType": "uint16", "name": "observationCardinalityNext", "type": "uint16"},
      {"internalType": "uint8", "name": "feeProtocol", "type": "uint8"},
      {"internalType": "bool", "name": "unlocked", "type": "bool"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "tokenId", "type": "uint256"}],
    "name": "positions",
    "outputs": [
      {"internalType": "uint96", "name": "nonce", "type": "uint96"},
      {"internalType": "address", "name": "operator", "type": "address"},
      {"internalType": "address", "name": "token0", "type": "address"},
      {"internalType": "address", "name": "token1", "type": "address"},
      {"internalType": "uint24", "name": "fee", "type": "uint24"},
      {"internalType": "int24", "name": "tickLower", "type": "int24"},
      {"internalType": "int24", "name": "tickUpper", "type": "int24"},
      {"internalType": "uint128", "name": "liquidity", "type": "uint128"},
      {"internalType": "uint256", "name": "feeGrowthInside0LastX128", "type": "uint256"},
      {"internalType": "uint256", "name": "feeGrowthInside1LastX128", "type": "uint256"},
      {"internalType": "uint128", "name": "tokensOwed0", "type": "uint128"},
      {"internalType": "uint128", "name": "tokensOwed1", "type": "uint128"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

var (
	evmPoolABI    abi.ABI
	evmPoolOnce   sync.Once
	evmPoolABIErr error
)

// EVMPoolABI parses and caches the shared EVM pool ABI.
func EVMPoolABI() (abi.ABI, error) {
	evmPoolOnce.Do(func() {
		evmPoolABI, evmPoolABIErr = abi.JSON(strings.NewReader(evmPoolABIJSON))
	})
	return evmPoolABI, evmPoolABIErr
}

// Slot0 holds the decoded pool slot0 state.
type Slot0 struct {
	SqrtPriceX96 *big.Int
	Tick         int32
}

// DecodeSlot0 unpacks the raw return data of a slot0() call.
func DecodeSlot0(data []byte) (Slot0, error) {
	poolABI, err := EVMPoolABI()
	if err != nil {
		return Slot0{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := poolABI.Methods["slot0"].Outputs.Unpack(data)
	if err != nil {
		return Slot0{}, fmt.Errorf("unpack slot0: %w", err)
	}
	if len(values) != 7 {
		return Slot0{}, fmt.Errorf("unexpected slot0 values: %d", len(values))
	}

	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return Slot0{}, fmt.Errorf("sqrt price: %w", err)
	}
	tickInt, err := asBigInt(values[1])
	if err != nil {
		return Slot0{}, fmt.Errorf("tick: %w", err)
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return Slot0{}, err
	}

	return Slot0{SqrtPriceX96: sqrtPrice, Tick: tick}, nil
}

// DecodeSlot0Hex unpacks hex-encoded slot0() return data, the form in which
// collaborators hand over raw eth_call responses.
func DecodeSlot0Hex(dataHex string) (Slot0, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return Slot0{}, fmt.Errorf("invalid slot0 data: %w", err)
	}
	return DecodeSlot0(data)
}

// NFTPosition holds the decoded fields of one position manager record.
type NFTPosition struct {
	Token0    common.Address
	Token1    common.Address
	Fee       uint32
	TickLower int32
	TickUpper int32
	Liquidity *big.Int
	FeeOwed0  *big.Int
	FeeOwed1  *big.Int
}

// DecodeNFTPosition unpacks the raw return data of a positions(tokenId) call
// on a nonfungible position manager.
func DecodeNFTPosition(data []byte) (NFTPosition, error) {
	poolABI, err := EVMPoolABI()
	if err != nil {
		return NFTPosition{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := poolABI.Methods["positions"].Outputs.Unpack(data)
	if err != nil {
		return NFTPosition{}, fmt.Errorf("unpack positions: %w", err)
	}
	if len(values) != 12 {
		return NFTPosition{}, fmt.Errorf("unexpected positions values: %d", len(values))
	}

	token0, err := asAddress(values[2])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("token0: %w", err)
	}
	token1, err := asAddress(values[3])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("token1: %w", err)
	}
	fee, err := asBigInt(values[4])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("fee: %w", err)
	}
	tickLowerInt, err := asBigInt(values[5])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("tick lower: %w", err)
	}
	tickUpperInt, err := asBigInt(values[6])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("tick upper: %w", err)
	}
	liq, err := asBigInt(values[7])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("liquidity: %w", err)
	}
	owed0, err := asBigInt(values[10])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("tokens owed0: %w", err)
	}
	owed1, err := asBigInt(values[11])
	if err != nil {
		return NFTPosition{}, fmt.Errorf("tokens owed1: %w", err)
	}

	tickLower, err := int24FromBig(tickLowerInt)
	if err != nil {
		return NFTPosition{}, err
	}
	tickUpper, err := int24FromBig(tickUpperInt)
	if err != nil {
		return NFTPosition{}, err
	}

	return NFTPosition{
		Token0:    token0,
		Token1:    token1,
		Fee:       uint32(fee.Uint64()),
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liq,
		FeeOwed0:  owed0,
		FeeOwed1:  owed1,
	}, nil
}

// RawPositionFromNFT converts a decoded position manager record into the
// loosely-typed record shape shared with the other discovery sources.
func RawPositionFromNFT(id, poolID string, pos NFTPosition) model.RawPosition {
	raw := model.RawPosition{
		ID:        id,
		PoolID:    poolID,
		TickLower: int64(pos.TickLower),
		TickUpper: int64(pos.TickUpper),
	}
	if pos.Liquidity != nil {
		raw.Liquidity = pos.Liquidity.String()
	}
	if pos.FeeOwed0 != nil {
		raw.FeeOwed0 = pos.FeeOwed0.String()
	}
	if pos.FeeOwed1 != nil {
		raw.FeeOwed1 = pos.FeeOwed1.String()
	}
	return raw
}

func asBigInt(value interface{}) (*big.Int, error) {
	parsed, ok := value.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T", value)
	}
	return parsed, nil
}

func asAddress(value interface{}) (common.Address, error) {
	parsed, ok := value.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected type %T", value)
	}
	return parsed, nil
}

func int24FromBig(value *big.Int) (int32, error) {
	if value == nil {
		return 0, fmt.Errorf("nil tick")
	}
	if !value.IsInt64() {
		return 0, fmt.Errorf("tick out of range: %s", value)
	}
	tick := value.Int64()
	if tick < -(1<<23) || tick >= 1<<23 {
		return 0, fmt.Errorf("tick out of int24 range: %d", tick)
	}
	return int32(tick), nil
}
