package progression

import (
	"testing"
	"time"
)

func Test_IsValidFundingAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		pool    float64
		want    bool
		wantErr bool
	}{
		{name: "exact pool plus fee", input: 105, pool: 100, want: true},
		{name: "inside tolerance", input: 105.00001, pool: 100, want: true},
		{name: "outside tolerance", input: 105.001, pool: 100, want: false},
		{name: "underpay rejected", input: 100, pool: 100, want: false},
		{name: "overpay rejected", input: 110, pool: 100, want: false},
		{name: "negative input errors", input: -1, pool: 100, wantErr: true},
		{name: "negative pool errors", input: 0, pool: -100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsValidFundingAmount(tt.input, tt.pool)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsValidFundingAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsValidFundingAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_RequiredDeposit(t *testing.T) {
	fee, total, err := RequiredDeposit(100)
	if err != nil {
		t.Fatalf("RequiredDeposit() error = %v", err)
	}
	if fee != 5 {
		t.Errorf("RequiredDeposit() fee = %v, want 5", fee)
	}
	if total != 105 {
		t.Errorf("RequiredDeposit() total = %v, want 105", total)
	}
}

func Test_CheckMinimumPool(t *testing.T) {
	tests := []struct {
		name    string
		pool    float64
		price   float64
		want    PoolCheck
		wantErr bool
	}{
		{name: "forty dollars is below minimum", pool: 0.02, price: 2000, want: PoolBelowMinimum},
		{name: "fifty dollars passes", pool: 0.025, price: 2000, want: PoolOK},
		{name: "zero pool is unset not undersized", pool: 0, price: 2000, want: PoolUnset},
		{name: "unknown price does not flag", pool: 10, price: 0, want: PoolOK},
		{name: "negative pool errors", pool: -1, price: 2000, wantErr: true},
		{name: "negative price errors", pool: 1, price: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckMinimumPool(tt.pool, tt.price)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckMinimumPool() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("CheckMinimumPool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_ClaimState(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		hours int
		now   time.Time
		want  ClaimPhase
	}{
		{name: "before end quest is active", hours: 168, now: end.Add(-time.Hour), want: PhaseQuestActive},
		{name: "one hour in claim is live", hours: 168, now: end.Add(time.Hour), want: PhaseClaimLive},
		{name: "window boundary still live", hours: 168, now: end.Add(168 * time.Hour), want: PhaseClaimLive},
		{name: "past window claim ended", hours: 168, now: end.Add(169 * time.Hour), want: PhaseClaimEnded},
		{name: "zero window defaults to a week", hours: 0, now: end.Add(167 * time.Hour), want: PhaseClaimLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClaimState(end, tt.hours, tt.now)
			if err != nil {
				t.Fatalf("ClaimState() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClaimState() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ClaimState(time.Time{}, 168, end); err == nil {
		t.Error("ClaimState() with zero end date should error")
	}
}

func Test_CanClaim(t *testing.T) {
	entry := WinnerSnapshot{Rank: 5, Wallet: "0xAbC"}

	tests := []struct {
		name    string
		entry   WinnerSnapshot
		winners int
		phase   ClaimPhase
		caller  string
		want    bool
	}{
		{name: "eligible winner", entry: entry, winners: 10, phase: PhaseClaimLive, caller: "0xAbC", want: true},
		{name: "wallet match is case insensitive", entry: entry, winners: 10, phase: PhaseClaimLive, caller: "0xabc", want: true},
		{name: "rank past winner count", entry: WinnerSnapshot{Rank: 11, Wallet: "0xAbC"}, winners: 10, phase: PhaseClaimLive, caller: "0xAbC", want: false},
		{name: "window not live", entry: entry, winners: 10, phase: PhaseQuestActive, caller: "0xAbC", want: false},
		{name: "window ended", entry: entry, winners: 10, phase: PhaseClaimEnded, caller: "0xAbC", want: false},
		{name: "wrong wallet", entry: entry, winners: 10, phase: PhaseClaimLive, caller: "0xDeF", want: false},
		{name: "unset winner count defaults to 100", entry: WinnerSnapshot{Rank: 100, Wallet: "0xAbC"}, winners: 0, phase: PhaseClaimLive, caller: "0xAbC", want: true},
		{name: "rank 101 misses default cap", entry: WinnerSnapshot{Rank: 101, Wallet: "0xAbC"}, winners: 0, phase: PhaseClaimLive, caller: "0xAbC", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanClaim(tt.entry, tt.winners, tt.phase, tt.caller); got != tt.want {
				t.Errorf("CanClaim() = %v, want %v", got, tt.want)
			}
		})
	}
}
