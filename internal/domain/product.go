package domain

// ProductType identifies the traded product. Products are a closed set of
// tagged variants, not a class hierarchy: tier dispatch is driven by these
// tags plus live market state.
type ProductType string

const (
	ProductIRS          ProductType = "IRS"
	ProductBasisSwap    ProductType = "BASIS_SWAP"
	ProductCrossCcySwap ProductType = "XCCY_SWAP"
	ProductFXForward    ProductType = "FX_FORWARD"
	ProductFXSwap       ProductType = "FX_SWAP"
	ProductNDF          ProductType = "NDF"
	ProductFXOption     ProductType = "FX_OPTION"
	ProductGoldOption   ProductType = "GOLD_OPTION"
	ProductSwaption     ProductType = "SWAPTION"
	ProductTimeOption   ProductType = "TIME_OPTION"
	ProductCDS          ProductType = "CDS"
	ProductCDSIndex     ProductType = "CDS_INDEX"
	ProductDigital      ProductType = "DIGITAL"
	ProductRangeDigital ProductType = "RANGE_DIGITAL"
	ProductGoldDigital  ProductType = "GOLD_DIGITAL"
	ProductBarrier      ProductType = "BARRIER"
	ProductTARF         ProductType = "TARF"
	ProductDigitalTARF  ProductType = "DIGITAL_TARF"
	ProductRangeAccrual ProductType = "RANGE_ACCRUAL"
)

// Tier is the challenge tier a trade is routed to for one valuation date.
type Tier string

const (
	TierLinear        Tier = "LINEAR"
	TierVanillaOption Tier = "VANILLA_OPTION"
	TierCredit        Tier = "CREDIT"
	TierExotic        Tier = "EXOTIC"
)

// AssetClass groups products for schedule-based fallback margin.
type AssetClass string

const (
	AssetClassInterestRate   AssetClass = "IR"
	AssetClassFX             AssetClass = "FX"
	AssetClassPreciousMetals AssetClass = "PM"
	AssetClassCredit         AssetClass = "CR"
	AssetClassStructured     AssetClass = "ST"
)

// OptionType distinguishes call and put payoffs.
type OptionType string

const (
	OptionCall OptionType = "CALL"
	OptionPut  OptionType = "PUT"
)

// BarrierStyle identifies the knock feature of a barrier product.
// Reverse variants (RKO/RKI) have the barrier on the in-the-money side and
// carry a wider pin-risk proximity threshold; KIKO is double-barrier.
type BarrierStyle string

const (
	BarrierNone BarrierStyle = ""
	BarrierKO   BarrierStyle = "KO"
	BarrierKI   BarrierStyle = "KI"
	BarrierRKO  BarrierStyle = "RKO"
	BarrierRKI  BarrierStyle = "RKI"
	BarrierKIKO BarrierStyle = "KIKO"
)

// Direction is the signed side of a linear trade.
type Direction string

const (
	// Interest rate swaps
	DirectionPayFixed     Direction = "PAY_FIXED"
	DirectionReceiveFixed Direction = "RECEIVE_FIXED"
	// FX forwards: side relative to the foreign currency
	DirectionBuyForeign  Direction = "BUY_FOREIGN"
	DirectionSellForeign Direction = "SELL_FOREIGN"
)

// AssetClassOf maps a product to its schedule-fallback asset class.
func AssetClassOf(p ProductType) AssetClass {
	switch p {
	case ProductIRS, ProductBasisSwap, ProductSwaption:
		return AssetClassInterestRate
	case ProductFXForward, ProductFXSwap, ProductNDF, ProductFXOption,
		ProductTimeOption, ProductDigital, ProductRangeDigital, ProductBarrier,
		ProductCrossCcySwap:
		return AssetClassFX
	case ProductGoldOption, ProductGoldDigital:
		return AssetClassPreciousMetals
	case ProductCDS, ProductCDSIndex:
		return AssetClassCredit
	case ProductTARF, ProductDigitalTARF, ProductRangeAccrual:
		return AssetClassStructured
	default:
		return AssetClassStructured
	}
}

// IsOption reports whether the product carries optionality.
func (p ProductType) IsOption() bool {
	switch p {
	case ProductFXOption, ProductGoldOption, ProductSwaption, ProductTimeOption,
		ProductDigital, ProductRangeDigital, ProductGoldDigital, ProductBarrier,
		ProductTARF, ProductDigitalTARF, ProductRangeAccrual:
		return true
	}
	return false
}

// IsDigital reports whether the product has a discontinuous payoff.
func (p ProductType) IsDigital() bool {
	switch p {
	case ProductDigital, ProductRangeDigital, ProductGoldDigital, ProductDigitalTARF:
		return true
	}
	return false
}

// IsCredit reports whether the product is single-name or index credit.
func (p ProductType) IsCredit() bool {
	return p == ProductCDS || p == ProductCDSIndex
}

// IsLinear reports whether the payoff is linear with no optionality.
func (p ProductType) IsLinear() bool {
	switch p {
	case ProductIRS, ProductBasisSwap, ProductCrossCcySwap,
		ProductFXForward, ProductFXSwap, ProductNDF:
		return true
	}
	return false
}
