// Package chain holds the static network and token configuration quests are
// created and funded against. The platform only validates and records chain
// context; transaction signing happens in the creator's wallet.
package chain

import (
	"regexp"
	"strings"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// ZeroAddress marks a chain's native currency in token tables.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Network is a supported EVM chain with its quest factory deployment.
type Network struct {
	Name             string
	Symbol           string
	ChainID          int64
	RPCURL           string
	BlockExplorer    string
	FactoryAddresses []string
	// CustomFactory is the factory the quest flow deploys through; older
	// entries in FactoryAddresses stay listed for verifying legacy quests.
	CustomFactory  string
	NativeSymbol   string
	NativeDecimals int
}

// Token is one funding option on a network. Native currencies carry the zero
// address.
type Token struct {
	Address     string
	Name        string
	Symbol      string
	Decimals    int
	IsNative    bool
	CoinGeckoID string
}

var networks = []Network{
	{
		Name: "Celo", Symbol: "CELO", ChainID: 42220,
		RPCURL: "https://forno.celo.org", BlockExplorer: "https://celoscan.io",
		FactoryAddresses: []string{
			"0x17cFed7fEce35a9A71D60Fbb5CA52237103A21FB",
			"0x8cA5975Ded3B2f93E188c05dD6eb16d89b14aeA5",
		},
		CustomFactory: "0x8cA5975Ded3B2f93E188c05dD6eb16d89b14aeA5",
		NativeSymbol:  "CELO", NativeDecimals: 18,
	},
	{
		Name: "Lisk", Symbol: "LSK", ChainID: 1135,
		RPCURL: "https://rpc.api.lisk.com", BlockExplorer: "https://blockscout.lisk.com",
		FactoryAddresses: []string{"0x21E855A5f0E6cF8d0CfE8780eb18e818950dafb7"},
		CustomFactory:    "0x21E855A5f0E6cF8d0CfE8780eb18e818950dafb7",
		NativeSymbol:     "ETH", NativeDecimals: 18,
	},
	{
		Name: "Arbitrum", Symbol: "ARB", ChainID: 42161,
		RPCURL: "https://arb1.arbitrum.io/rpc", BlockExplorer: "https://arbiscan.io",
		FactoryAddresses: []string{"0x9D6f441b31FBa22700bb3217229eb89b13FB49de"},
		CustomFactory:    "0x9D6f441b31FBa22700bb3217229eb89b13FB49de",
		NativeSymbol:     "ETH", NativeDecimals: 18,
	},
	{
		Name: "Base", Symbol: "BASE", ChainID: 8453,
		RPCURL: "https://base.publicnode.com", BlockExplorer: "https://basescan.org",
		FactoryAddresses: []string{"0x587b840140321DD8002111282748acAdaa8fA206"},
		CustomFactory:    "0x587b840140321DD8002111282748acAdaa8fA206",
		NativeSymbol:     "ETH", NativeDecimals: 18,
	},
}

var tokensByChain = map[int64][]Token{
	42220: {
		{Address: "0x471EcE3750Da237f93B8E339c536989b8978a438", Name: "Celo", Symbol: "CELO", Decimals: 18, IsNative: true, CoinGeckoID: "celo"},
		{Address: "0x765DE816845861e75A25fCA122bb6898B8B1282a", Name: "Celo Dollar", Symbol: "cUSD", Decimals: 18, CoinGeckoID: "celo-dollar"},
		{Address: "0x48065fbBE25f71C9282ddf5e1cD6D6A887483D5e", Name: "Tether", Symbol: "USDT", Decimals: 6, CoinGeckoID: "tether"},
		{Address: "0xcebA9300f2b948710d2653dD7B07f33A8B32118C", Name: "USD Coin", Symbol: "USDC", Decimals: 6, CoinGeckoID: "usd-coin"},
	},
	1135: {
		{Address: ZeroAddress, Name: "Ethereum", Symbol: "ETH", Decimals: 18, IsNative: true, CoinGeckoID: "ethereum"},
		{Address: "0xac485391EB2d7D88253a7F1eF18C37f4242D1A24", Name: "Lisk", Symbol: "LSK", Decimals: 18, CoinGeckoID: "lisk"},
	},
	42161: {
		{Address: ZeroAddress, Name: "Ethereum", Symbol: "ETH", Decimals: 18, IsNative: true, CoinGeckoID: "ethereum"},
		{Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Name: "USD Coin", Symbol: "USDC", Decimals: 6, CoinGeckoID: "usd-coin"},
	},
	8453: {
		{Address: ZeroAddress, Name: "Ethereum", Symbol: "ETH", Decimals: 18, IsNative: true, CoinGeckoID: "ethereum"},
		{Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Name: "USD Coin", Symbol: "USDC", Decimals: 6, CoinGeckoID: "usd-coin"},
	},
}

// Networks returns the supported chains in display order.
func Networks() []Network {
	out := make([]Network, len(networks))
	copy(out, networks)
	return out
}

// ByChainID returns the network for the given chain id.
func ByChainID(chainID int64) (Network, error) {
	for _, n := range networks {
		if n.ChainID == chainID {
			return n, nil
		}
	}
	return Network{}, apperrors.NotFound("unsupported chain id %d", chainID)
}

// TokensFor returns the funding tokens configured for a chain.
func TokensFor(chainID int64) []Token {
	tokens := tokensByChain[chainID]
	out := make([]Token, len(tokens))
	copy(out, tokens)
	return out
}

// TokenByAddress resolves a token on a chain by its contract address.
func TokenByAddress(chainID int64, address string) (Token, error) {
	for _, t := range tokensByChain[chainID] {
		if strings.EqualFold(t.Address, address) {
			return t, nil
		}
	}
	return Token{}, apperrors.NotFound("token %s is not configured on chain %d", address, chainID)
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s is a well-formed 20-byte hex address.
// Checksum casing is not enforced.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ValidateTokenAddress checks an address a quest creator entered by hand.
func ValidateTokenAddress(s string) error {
	if s == "" {
		return apperrors.Validation("token address is required")
	}
	if !ValidAddress(s) {
		return apperrors.Validation("malformed token address %q", s)
	}
	return nil
}
