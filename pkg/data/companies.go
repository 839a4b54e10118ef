// Package data carries the built-in company universe: the liquid CSE names
// used when no explicit symbol list is given. The live listing endpoint
// supersedes this when reachable.
package data

// Company identifies one listed company.
type Company struct {
	Symbol string
	Name   string
	Sector string
}

// DefaultUniverse is the fallback set of widely traded CSE symbols.
var DefaultUniverse = []Company{
	{Symbol: "JKH.N0000", Name: "John Keells Holdings", Sector: "Capital Goods"},
	{Symbol: "COMB.N0000", Name: "Commercial Bank of Ceylon", Sector: "Banks"},
	{Symbol: "HNB.N0000", Name: "Hatton National Bank", Sector: "Banks"},
	{Symbol: "SAMP.N0000", Name: "Sampath Bank", Sector: "Banks"},
	{Symbol: "NDB.N0000", Name: "National Development Bank", Sector: "Banks"},
	{Symbol: "DFCC.N0000", Name: "DFCC Bank", Sector: "Banks"},
	{Symbol: "LOLC.N0000", Name: "LOLC Holdings", Sector: "Diversified Financials"},
	{Symbol: "VONE.N0000", Name: "Vallibel One", Sector: "Diversified Financials"},
	{Symbol: "CTC.N0000", Name: "Ceylon Tobacco Company", Sector: "Food Beverage & Tobacco"},
	{Symbol: "NEST.N0000", Name: "Nestle Lanka", Sector: "Food Beverage & Tobacco"},
	{Symbol: "CARG.N0000", Name: "Cargills (Ceylon)", Sector: "Food & Staples Retailing"},
	{Symbol: "CCS.N0000", Name: "Ceylon Cold Stores", Sector: "Food Beverage & Tobacco"},
	{Symbol: "LION.N0000", Name: "Lion Brewery (Ceylon)", Sector: "Food Beverage & Tobacco"},
	{Symbol: "DIST.N0000", Name: "Distilleries Company of Sri Lanka", Sector: "Food Beverage & Tobacco"},
	{Symbol: "MELS.N0000", Name: "Melstacorp", Sector: "Capital Goods"},
	{Symbol: "HAYL.N0000", Name: "Hayleys", Sector: "Capital Goods"},
	{Symbol: "RCL.N0000", Name: "Royal Ceramics Lanka", Sector: "Capital Goods"},
	{Symbol: "TILE.N0000", Name: "Lanka Tiles", Sector: "Capital Goods"},
	{Symbol: "TKYO.N0000", Name: "Tokyo Cement Company (Lanka)", Sector: "Materials"},
	{Symbol: "DIAL.N0000", Name: "Dialog Axiata", Sector: "Telecommunication Services"},
	{Symbol: "SLTL.N0000", Name: "Sri Lanka Telecom", Sector: "Telecommunication Services"},
	{Symbol: "AEL.N0000", Name: "Access Engineering", Sector: "Capital Goods"},
	{Symbol: "EXPO.N0000", Name: "Expolanka Holdings", Sector: "Transportation"},
	{Symbol: "HEMS.N0000", Name: "Hemas Holdings", Sector: "Capital Goods"},
	{Symbol: "AAIC.N0000", Name: "Softlogic Life Insurance", Sector: "Insurance"},
	{Symbol: "CINS.N0000", Name: "Ceylinco Insurance", Sector: "Insurance"},
	{Symbol: "KGAL.N0000", Name: "Kegalle Plantations", Sector: "Food Beverage & Tobacco"},
	{Symbol: "WATA.N0000", Name: "Watawala Plantations", Sector: "Food Beverage & Tobacco"},
	{Symbol: "AHUN.N0000", Name: "Aitken Spence Hotel Holdings", Sector: "Consumer Services"},
	{Symbol: "SPEN.N0000", Name: "Aitken Spence", Sector: "Capital Goods"},
}

// DefaultSymbols returns just the symbols of the built-in universe.
func DefaultSymbols() []string {
	symbols := make([]string, len(DefaultUniverse))
	for i, c := range DefaultUniverse {
		symbols[i] = c.Symbol
	}
	return symbols
}

// Lookup finds a company in the built-in universe.
func Lookup(symbol string) (Company, bool) {
	for _, c := range DefaultUniverse {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Company{}, false
}
