package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
)

// ShareCardService renders leaderboard share images through headless Chrome:
// a small HTML template is laid out by the browser and screenshotted to PNG.
type ShareCardService struct {
	logger *slog.Logger
}

type shareCardData struct {
	QuestTitle string
	Timestamp  string
	Entries    []*models.LeaderboardEntry
}

func NewShareCardService() *ShareCardService {
	service := &ShareCardService{
		logger: slog.With(slog.String("service", "sharecard")),
	}
	service.testChromedpAvailability()
	return service
}

func (s *ShareCardService) testChromedpAvailability() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chromedpCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	err := chromedp.Run(chromedpCtx, chromedp.Navigate("data:text/html,<html><body>test</body></html>"))
	if err != nil {
		s.logger.Error("chromedp not available - share card generation will fail",
			slog.String("error", err.Error()))
	}
}

// GenerateShareCard renders the top of a quest leaderboard as a PNG.
func (s *ShareCardService) GenerateShareCard(ctx context.Context, questTitle string, entries []*models.LeaderboardEntry) ([]byte, error) {
	start := time.Now()

	if len(entries) == 0 {
		return nil, apperrors.Validation("no leaderboard entries to render")
	}
	if len(entries) > 5 {
		entries = entries[:5]
	}

	htmlContent, err := s.generateHTML(shareCardData{
		QuestTitle: questTitle,
		Timestamp:  time.Now().Format("15:04 MST"),
		Entries:    entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, 15*time.Second)
	defer cancel()

	var imageBytes []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("data:text/html,"+htmlContent),
		chromedp.WaitVisible("#sharecard-container", chromedp.ByID),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Screenshot("#sharecard-container", &imageBytes, chromedp.ByID),
	)
	if err != nil {
		s.logger.Error("Failed to render share card",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, apperrors.RemoteService("failed to render share card", err)
	}

	s.logger.Info("Share card rendered",
		slog.String("quest", questTitle),
		slog.Int("entries", len(entries)),
		slog.Duration("took", time.Since(start)))

	return imageBytes, nil
}

const shareCardTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { margin: 0; font-family: 'Segoe UI', Arial, sans-serif; }
  #sharecard-container {
    width: 640px; padding: 32px; box-sizing: border-box;
    background: linear-gradient(135deg, #1e3a8a 0%, #3b82f6 100%);
    color: #fff; border-radius: 16px;
  }
  h1 { font-size: 24px; margin: 0 0 4px; }
  .ts { font-size: 12px; opacity: 0.7; margin-bottom: 20px; }
  .row {
    display: flex; justify-content: space-between; align-items: center;
    background: rgba(255,255,255,0.1); border-radius: 8px;
    padding: 10px 16px; margin-bottom: 8px;
  }
  .rank { font-weight: bold; width: 36px; }
  .wallet { flex: 1; font-family: monospace; font-size: 14px; }
  .points { font-weight: bold; }
</style>
</head>
<body>
<div id="sharecard-container">
  <h1>{{.QuestTitle}}</h1>
  <div class="ts">Leaderboard · {{.Timestamp}}</div>
  {{range .Entries}}
  <div class="row">
    <span class="rank">#{{.Rank}}</span>
    <span class="wallet">{{if .Username}}{{.Username}}{{else}}{{.Wallet}}{{end}}</span>
    <span class="points">{{.TotalPoints}} pts</span>
  </div>
  {{end}}
</div>
</body>
</html>`

func (s *ShareCardService) generateHTML(data shareCardData) (string, error) {
	tmpl, err := template.New("sharecard").Parse(shareCardTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
