package chain

import (
	"testing"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

func Test_ByChainID(t *testing.T) {
	tests := []struct {
		name    string
		chainID int64
		want    string
		wantErr bool
	}{
		{name: "celo", chainID: 42220, want: "Celo"},
		{name: "lisk", chainID: 1135, want: "Lisk"},
		{name: "arbitrum", chainID: 42161, want: "Arbitrum"},
		{name: "base", chainID: 8453, want: "Base"},
		{name: "mainnet unsupported", chainID: 1, wantErr: true},
		{name: "zero", chainID: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByChainID(tt.chainID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ByChainID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperrors.IsNotFound(err) {
					t.Errorf("ByChainID() error kind = %v, want not-found", apperrors.KindOf(err))
				}
				return
			}
			if got.Name != tt.want {
				t.Errorf("ByChainID() = %v, want %v", got.Name, tt.want)
			}
			if got.CustomFactory == "" {
				t.Errorf("%s has no quest factory address", got.Name)
			}
		})
	}
}

func Test_TokenByAddress(t *testing.T) {
	got, err := TokenByAddress(42220, "0x765de816845861e75a25fca122bb6898b8b1282a")
	if err != nil {
		t.Fatalf("TokenByAddress() error = %v", err)
	}
	if got.Symbol != "cUSD" {
		t.Errorf("TokenByAddress() symbol = %q, want cUSD", got.Symbol)
	}

	if _, err := TokenByAddress(8453, "0x765DE816845861e75A25fCA122bb6898B8B1282a"); !apperrors.IsNotFound(err) {
		t.Errorf("TokenByAddress() on the wrong chain should be not-found, got %v", err)
	}
}

func Test_TokensFor(t *testing.T) {
	for _, n := range Networks() {
		tokens := TokensFor(n.ChainID)
		if len(tokens) == 0 {
			t.Errorf("%s has no funding tokens", n.Name)
			continue
		}
		native := 0
		for _, tok := range tokens {
			if tok.IsNative {
				native++
			}
			if tok.CoinGeckoID == "" {
				t.Errorf("%s token %s has no price id", n.Name, tok.Symbol)
			}
			if !ValidAddress(tok.Address) {
				t.Errorf("%s token %s has malformed address %q", n.Name, tok.Symbol, tok.Address)
			}
		}
		if native != 1 {
			t.Errorf("%s has %d native tokens, want exactly 1", n.Name, native)
		}
	}
}

func Test_ValidateTokenAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{name: "checksummed", addr: "0x471EcE3750Da237f93B8E339c536989b8978a438"},
		{name: "lowercase", addr: "0x471ece3750da237f93b8e339c536989b8978a438"},
		{name: "zero address", addr: ZeroAddress},
		{name: "empty", addr: "", wantErr: true},
		{name: "missing prefix", addr: "471EcE3750Da237f93B8E339c536989b8978a438", wantErr: true},
		{name: "too short", addr: "0x471EcE", wantErr: true},
		{name: "non-hex", addr: "0x471EcE3750Da237f93B8E339c536989b8978aZZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTokenAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTokenAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}
