package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/chain"
)

// PriceService resolves USD unit prices for funding tokens through the
// CoinGecko simple-price endpoint. Prices feed the minimum-pool check, which
// tolerates staleness, so responses are cached with a TTL.
type PriceService struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

type cachedPrice struct {
	price     float64
	timestamp time.Time
}

func NewPriceService(baseURL string, cacheSize int, ttl time.Duration) *PriceService {
	cache, _ := lru.New(cacheSize)
	return &PriceService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		ttl:     ttl,
		logger:  slog.With(slog.String("service", "price")),
	}
}

// USDPriceForToken resolves a token on a chain to its CoinGecko id and
// returns the cached or freshly fetched USD price.
func (s *PriceService) USDPriceForToken(ctx context.Context, chainID int64, tokenAddress string) (float64, error) {
	token, err := chain.TokenByAddress(chainID, tokenAddress)
	if err != nil {
		return 0, err
	}
	return s.USDPrice(ctx, token.CoinGeckoID)
}

// USDPrice returns the USD unit price for a CoinGecko asset id.
func (s *PriceService) USDPrice(ctx context.Context, geckoID string) (float64, error) {
	if geckoID == "" {
		return 0, apperrors.Validation("price lookup requires an asset id")
	}

	if v, ok := s.cache.Get(geckoID); ok {
		entry := v.(cachedPrice)
		if time.Since(entry.timestamp) < s.ttl {
			return entry.price, nil
		}
		s.cache.Remove(geckoID)
	}

	price, err := s.fetch(ctx, geckoID)
	if err != nil {
		return 0, err
	}

	s.cache.Add(geckoID, cachedPrice{price: price, timestamp: time.Now()})
	return price, nil
}

func (s *PriceService) fetch(ctx context.Context, geckoID string) (float64, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		s.baseURL, url.QueryEscape(geckoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, apperrors.RemoteService("failed to build price request", err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, apperrors.RemoteService("price oracle unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.RemoteService(
			fmt.Sprintf("price oracle returned status %d", resp.StatusCode), nil)
	}

	var body map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, apperrors.RemoteService("failed to decode price response", err)
	}

	entry, ok := body[geckoID]
	if !ok {
		return 0, apperrors.NotFound("no price for asset %s", geckoID)
	}

	s.logger.Debug("Price fetched",
		slog.String("asset", geckoID),
		slog.Float64("usd", entry.USD),
		slog.Duration("took", time.Since(start)))

	return entry.USD, nil
}
