package chainio

import (
	"math"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FeeCalculator turns a simulated gas estimate into a gas limit and fee.
// Implemented as: https://hackmd.io/@3DOBr1TJQ3mQAFDEO0BXgg/S1N09wpQp
type FeeCalculator struct {
	Denom         string
	BaseFee       float64
	GasAdjustment float64
}

// GasLimit applies the safety multiplier: ceil(gasSimulated * adjustment).
// The result is never below the simulated estimate for adjustments >= 1.
func (f FeeCalculator) GasLimit(gasSimulated uint64) uint64 {
	return uint64(math.Ceil(float64(gasSimulated) * f.GasAdjustment))
}

// Fee returns the gas limit and fee coins for a simulated gas estimate.
// The amount is ceil(baseFee * gasLimit) in the configured denom.
func (f FeeCalculator) Fee(gasSimulated uint64) (uint64, sdk.Coins) {
	gas := f.GasLimit(gasSimulated)
	amount := int64(math.Ceil(f.BaseFee * float64(gas)))
	return gas, sdk.NewCoins(sdk.NewCoin(f.Denom, sdkmath.NewInt(amount)))
}
